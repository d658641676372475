package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestExtractQueryType(t *testing.T) {
	assert.Equal(t, "SELECT", extractQueryType("  select * from scans"))
	assert.Equal(t, "INSERT", extractQueryType(`INSERT INTO "scans" ("user_id") VALUES (1)`))
	assert.Equal(t, "UPDATE", extractQueryType(`UPDATE "users" SET total_points = total_points + 10`))
	assert.Equal(t, "", extractQueryType("BEGIN"))
}

func TestExtractTableName(t *testing.T) {
	assert.Equal(t, "SCANS", extractTableName(`SELECT count(*) FROM "scans" WHERE user_id = 1`))
	assert.Equal(t, "CODES", extractTableName(`INSERT INTO "codes" ("brand_id","token") VALUES (1,'ABC')`))
	assert.Equal(t, "USERS", extractTableName(`UPDATE "users" SET "total_points"=total_points + 5`))
	assert.Equal(t, "", extractTableName("PRAGMA foreign_keys"))
}

func TestExtractTraceIDFromContext(t *testing.T) {
	assert.Empty(t, extractTraceIDFromContext(context.Background()))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	assert.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	assert.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", extractTraceIDFromContext(ctx))
}
