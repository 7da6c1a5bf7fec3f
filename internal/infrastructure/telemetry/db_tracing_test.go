package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := openTestDB(t)
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: false}, zaptest.NewLogger(t))

	require.NoError(t, plugin.Register(db))
	assert.Nil(t, db.Callback().Query().Get("otel_slow_query:query"))
}

func TestDBTracingPlugin_RecordsSpans(t *testing.T) {
	recorder := installRecorder(t)
	db := openTestDB(t)

	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		DBSystem:        "sqlite",
		SlowQueryThresh: time.Nanosecond,
	}, zaptest.NewLogger(t))
	require.NoError(t, plugin.Register(db))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&tracedRow{Name: "carrot"}).Error)
	var rows []tracedRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)

	assert.Len(t, rows, 1)
	assert.NotEmpty(t, recorder.Ended())
}

func TestNewDBTracingPlugin_DefaultsThreshold(t *testing.T) {
	plugin := NewDBTracingPlugin(DBTracingConfig{}, zaptest.NewLogger(t))
	assert.Equal(t, 200*time.Millisecond, plugin.config.SlowQueryThresh)
}
