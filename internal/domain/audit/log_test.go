package audit

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestRender_Empty(t *testing.T) {
	l := NewLog()
	assert.Equal(t, "No Lemon Squeezy operations logged.", l.Render())
	assert.Equal(t, 0, l.Len())
}

func TestAppend_AssignsIDAndUTCTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	l := NewLog(WithClock(fixedClock(time.Date(2026, 10, 14, 12, 0, 0, 0, loc))))

	entry := l.Append("get_store", json.RawMessage(`{"store_id":"1"}`))

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, time.UTC, entry.Timestamp.Location())
	assert.Equal(t, 10, entry.Timestamp.Hour())
	assert.Equal(t, "get_store", entry.Operation)
}

func TestRender_Format(t *testing.T) {
	ts := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	l := NewLog(WithClock(fixedClock(ts)))

	l.Append("get_user", json.RawMessage(`{}`))
	l.Append("get_store", json.RawMessage(`{"store_id":"42"}`))

	want := "[2026-10-14T09:30:00Z]\nOperation: get_user\nParams: {}" +
		"\n\n" +
		"[2026-10-14T09:30:00Z]\nOperation: get_store\nParams: {\n  \"store_id\": \"42\"\n}"
	assert.Equal(t, want, l.Render())
}

func TestRender_PreservesKeyOrder(t *testing.T) {
	l := NewLog()
	l.Append("create_checkout", json.RawMessage(`{"data":{"type":"checkouts","attributes":{"z":1,"a":2}}}`))

	out := l.Render()
	assert.Less(t, strings.Index(out, `"z"`), strings.Index(out, `"a"`))
	assert.Less(t, strings.Index(out, `"type"`), strings.Index(out, `"attributes"`))
}

func TestRender_OrderMatchesAppends(t *testing.T) {
	l := NewLog()
	names := []string{"list_stores", "get_order", "list_webhooks", "get_user"}
	for _, n := range names {
		l.Append(n, nil)
	}

	out := l.Render()
	blocks := strings.Split(out, "\n\n")
	require.Len(t, blocks, len(names))
	for i, n := range names {
		assert.Contains(t, blocks[i], "Operation: "+n+"\n")
	}
}

func TestAppend_NormalizesParams(t *testing.T) {
	tests := []struct {
		name string
		in   json.RawMessage
	}{
		{"nil", nil},
		{"empty", json.RawMessage("")},
		{"null", json.RawMessage("null")},
		{"array", json.RawMessage(`[1,2]`)},
		{"invalid", json.RawMessage(`{"a":`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLog()
			e := l.Append("list_orders", tc.in)
			assert.Equal(t, "{}", string(e.Parameters))
		})
	}
}

func TestAppend_CopiesParams(t *testing.T) {
	l := NewLog()
	raw := []byte(`{"order_id":"1"}`)
	l.Append("get_order", raw)
	raw[13] = '9'

	assert.Equal(t, `{"order_id":"1"}`, string(l.Entries()[0].Parameters))
}

func TestEntries_ReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append("get_user", nil)

	got := l.Entries()
	got[0].Operation = "tampered"

	assert.Equal(t, "get_user", l.Entries()[0].Operation)
}

func TestRender_DoesNotMutate(t *testing.T) {
	l := NewLog()
	l.Append("get_user", nil)

	first := l.Render()
	second := l.Render()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, l.Len())
}

func TestAppend_Concurrent(t *testing.T) {
	l := NewLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Append("get_order", json.RawMessage(fmt.Sprintf(`{"order_id":"%d"}`, i)))
			_ = l.Render()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, l.Len())
}
