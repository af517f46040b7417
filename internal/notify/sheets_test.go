package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobflow/internal/domain"
)

type appendCall struct {
	spreadsheetID string
	rng           string
	values        [][]interface{}
}

type fakeAppender struct {
	tabs   []string
	calls  []appendCall
	err    error
	tabErr error
}

func (f *fakeAppender) EnsureTab(_ context.Context, spreadsheetID, title string) error {
	f.tabs = append(f.tabs, spreadsheetID+"/"+title)
	return f.tabErr
}

func (f *fakeAppender) AppendValues(_ context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	f.calls = append(f.calls, appendCall{spreadsheetID, rng, values})
	return f.err
}

func TestSheetsSendAppendsRowPerJob(t *testing.T) {
	fake := &fakeAppender{}
	n, err := NewSheets(fake, nil)
	require.NoError(t, err)
	n.clock = func() time.Time { return time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, n.Send(context.Background(), sampleDigest("sheet-1")))

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, "sheet-1", call.spreadsheetID)
	assert.Equal(t, "Alerts!A1", call.rng)
	require.Len(t, call.values, 2)
	assert.Equal(t, []interface{}{
		"2025-03-02T00:00:00Z",
		"New Go Developer jobs for you!",
		"Go <Backend> Engineer",
		"Acme",
		"Pune",
		"adzuna",
		"https://example.com/jobs/1",
		"2025-03-01T09:30:00Z",
	}, call.values[0])
	assert.Equal(t, "", call.values[1][7])
}

func TestSheetsSendHonoursTab(t *testing.T) {
	fake := &fakeAppender{}
	n, err := NewSheets(fake, nil)
	require.NoError(t, err)

	require.NoError(t, n.Send(context.Background(), sampleDigest("sheet-1/Mine")))
	assert.Equal(t, "Mine!A1", fake.calls[0].rng)
}

func TestSheetsSendSkipsEmptyDigest(t *testing.T) {
	fake := &fakeAppender{}
	n, err := NewSheets(fake, nil)
	require.NoError(t, err)

	require.NoError(t, n.Send(context.Background(), domain.Digest{Contact: "sheet-1"}))
	assert.Empty(t, fake.calls)
}

func TestSheetsSendWrapsError(t *testing.T) {
	n, err := NewSheets(&fakeAppender{err: errors.New("quota")}, nil)
	require.NoError(t, err)

	err = n.Send(context.Background(), sampleDigest("sheet-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestSheetsSendPreparesTabOnce(t *testing.T) {
	fake := &fakeAppender{}
	n, err := NewSheets(fake, nil)
	require.NoError(t, err)

	require.NoError(t, n.Send(context.Background(), sampleDigest("sheet-1")))
	require.NoError(t, n.Send(context.Background(), sampleDigest("sheet-1")))
	require.NoError(t, n.Send(context.Background(), sampleDigest("sheet-1/Mine")))

	assert.Equal(t, []string{"sheet-1/Alerts", "sheet-1/Mine"}, fake.tabs)
	assert.Len(t, fake.calls, 3)
}

func TestSheetsSendStopsWhenTabFails(t *testing.T) {
	fake := &fakeAppender{tabErr: errors.New("forbidden")}
	n, err := NewSheets(fake, nil)
	require.NoError(t, err)

	err = n.Send(context.Background(), sampleDigest("sheet-1"))
	require.Error(t, err)
	assert.Empty(t, fake.calls)
}
