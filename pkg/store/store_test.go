package store

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/lotplan/pkg/errors"
	"github.com/matzehuels/lotplan/pkg/observability"
	"github.com/matzehuels/lotplan/pkg/publish"
)

func samplePublication() *publish.Publication {
	return &publish.Publication{
		ID: uuid.NewString(),
		Lot: publish.Lot{
			Name:         "Harbour Street",
			Address:      "12 Harbour St",
			Latitude:     54.3233,
			Longitude:    10.1228,
			PricePerHour: 2.5,
		},
		Spots: []publish.SpotRecord{
			{Label: "P1", X: 20, Y: 20},
			{Label: "P2", X: 80, Y: 20, Rotation: 45},
		},
		TotalSpots:  2,
		PublishedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	pub := samplePublication()

	require.NoError(t, st.Save(ctx, pub))

	got, err := st.Get(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, pub.ID, got.ID)
	assert.Equal(t, pub.Lot, got.Lot)
	assert.Equal(t, pub.Spots, got.Spots)
	assert.Equal(t, pub.TotalSpots, got.TotalSpots)
	assert.True(t, pub.PublishedAt.Equal(got.PublishedAt), "PublishedAt = %v, want %v", got.PublishedAt, pub.PublishedAt)

	// Saving again overwrites.
	pub.Lot.PricePerHour = 3
	require.NoError(t, st.Save(ctx, pub))
	got, err = st.Get(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.Lot.PricePerHour)

	_, err = st.Get(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "Get(unknown) error = %v", err)

	_, err = st.Get(ctx, "../../etc/passwd")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "Get(bad id) error = %v", err)
}

func TestFileStore(t *testing.T) {
	st, err := NewFileStore(filepath.Join(t.TempDir(), "pubs"))
	require.NoError(t, err)
	defer st.Close()
	exerciseStore(t, st)
}

func TestFileStoreWritesJSON(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	pub := samplePublication()
	require.NoError(t, st.Save(context.Background(), pub))

	data, err := os.ReadFile(filepath.Join(st.Path(), pub.ID+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_spots": 2`)
	assert.Contains(t, string(data), `"label": "P2"`)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := Open(ctx, "file://"+dir)
	require.NoError(t, err)
	assert.Equal(t, "file", Backend(st))
	assert.Equal(t, dir, st.(*FileStore).Path())

	_, err = Open(ctx, "ftp://example.com/pubs")
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported), "Open(ftp) error = %v", err)
}

func TestFilePath(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"file:///var/lib/lotplan", "/var/lib/lotplan"},
		{"file://./published", "./published"},
		{"published", "published"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filePath(u))
		})
	}
}

func TestMongoDatabase(t *testing.T) {
	assert.Equal(t, "parking", mongoDatabase("mongodb://localhost:27017/parking"))
	assert.Equal(t, DefaultMongoDatabase, mongoDatabase("mongodb://localhost:27017"))
	assert.Equal(t, DefaultMongoDatabase, mongoDatabase("mongodb://localhost:27017/"))
}

type recordingStoreHooks struct {
	backend string
	spots   int
	err     error
}

func (r *recordingStoreHooks) OnSave(_ context.Context, backend string, spots int, _ time.Duration, err error) {
	r.backend, r.spots, r.err = backend, spots, err
}

func TestSaveReportsToHooks(t *testing.T) {
	rec := &recordingStoreHooks{}
	observability.SetStoreHooks(rec)
	t.Cleanup(observability.Reset)

	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, Save(context.Background(), st, samplePublication()))

	assert.Equal(t, "file", rec.backend)
	assert.Equal(t, 2, rec.spots)
	assert.NoError(t, rec.err)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("LOTPLAN_TEST_REDIS")
	if addr == "" {
		t.Skip("LOTPLAN_TEST_REDIS not set")
	}
	st, err := NewRedisStore(context.Background(), addr)
	require.NoError(t, err)
	defer st.Close()
	exerciseStore(t, st)
}

func TestStoresReportUnreachableBackends(t *testing.T) {
	tests := []struct {
		name string
		url  string
		code errors.Code
	}{
		{"redis refused", "redis://127.0.0.1:1/0", errors.ErrCodeUnavailable},
		{"mongodb no server", "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200", errors.ErrCodeUnavailable},
		{"mongodb bad option", "mongodb://localhost/?maxPoolSize=many", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			st, err := Open(ctx, tt.url)
			require.Error(t, err)
			assert.Nil(t, st)
			assert.True(t, errors.Is(err, tt.code), "Open(%s) error = %v, want %s", tt.url, err, tt.code)
		})
	}
}

func TestMongoStore(t *testing.T) {
	addr := os.Getenv("LOTPLAN_TEST_MONGO")
	if addr == "" {
		t.Skip("LOTPLAN_TEST_MONGO not set")
	}
	st, err := NewMongoStore(context.Background(), addr)
	require.NoError(t, err)
	defer st.Close()
	exerciseStore(t, st)
}
