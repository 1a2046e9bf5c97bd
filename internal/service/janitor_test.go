package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-lab/internal/logger"
	"prompt-lab/internal/model"
)

func TestJanitor_PrunesOnlyExpired(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionService(db)

	old, err := sessions.Record(nil, "old", testResult("r"))
	require.NoError(t, err)
	_, err = sessions.Record(nil, "new", testResult("r"))
	require.NoError(t, err)

	require.NoError(t, db.Model(old).UpdateColumn("created_at", time.Now().AddDate(0, 0, -40)).Error)

	janitor := NewJanitorService(db, logger.Nop(), 30)
	n, err := janitor.PruneExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var remaining []model.PromptSession
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].UserPrompt)
}

func TestJanitor_ZeroRetentionKeepsEverything(t *testing.T) {
	db := newTestDB(t)
	_, err := NewSessionService(db).Record(nil, "p", testResult("r"))
	require.NoError(t, err)

	n, err := NewJanitorService(db, logger.Nop(), 0).PruneExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
