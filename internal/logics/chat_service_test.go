package logics

import (
	"context"
	"testing"

	"register-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsSelectQuery(t *testing.T) {
	assert.True(t, isSelectQuery("SELECT * FROM inward"))
	assert.True(t, isSelectQuery("  select inward_no from inward where assignment_status = 'Pending'"))
	assert.True(t, isSelectQuery("SELECT count(*) FROM outward;"))

	assert.False(t, isSelectQuery("DELETE FROM inward"))
	assert.False(t, isSelectQuery("UPDATE inward SET subject = 'x'"))
	assert.False(t, isSelectQuery("DROP TABLE inward"))
	assert.False(t, isSelectQuery("SELECT 1; DROP TABLE inward"))
	assert.False(t, isSelectQuery(""))
}

func TestRunQueryToolOnlyAllowsSelect(t *testing.T) {
	db := newTestDB(t)
	cs := &ChatService{db: db, logger: zap.NewNop()}

	result := cs.runQueryTool(context.Background(), "DELETE FROM inward")
	assert.Equal(t, "Error: only SELECT queries are allowed", result)
}

func TestRunQueryToolReturnsRows(t *testing.T) {
	db := newTestDB(t)
	inwardSvc := newInwardService(t, db, nil)
	cs := &ChatService{db: db, logger: zap.NewNop()}

	entry, err := inwardSvc.Create(context.Background(), validInwardInput())
	require.NoError(t, err)

	result := cs.runQueryTool(context.Background(), "SELECT inward_no FROM inward")
	assert.Contains(t, result, entry.InwardNo)
}

func TestRunToolSchema(t *testing.T) {
	cs := &ChatService{logger: zap.NewNop()}

	result := cs.runTool(context.Background(), "get_table_schema", "{}")
	assert.Contains(t, result, "inward_no")
	assert.Contains(t, result, "outward_no")
	assert.Contains(t, result, "linked_inward_id")

	result = cs.runTool(context.Background(), "launch_missiles", "{}")
	assert.Contains(t, result, "unknown tool")
}

func TestChatCacheKeyIsStable(t *testing.T) {
	conversation := []models.ChatMessage{{Role: "user", Content: "how many pending letters?"}}

	a, err := chatCacheKey(conversation)
	require.NoError(t, err)
	b, err := chatCacheKey(conversation)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := chatCacheKey([]models.ChatMessage{{Role: "user", Content: "list completed letters"}})
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}
