package filerepo_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-stock-server/internal/errors"
	"github.com/jrsteele09/go-stock-server/internal/utils"
	"github.com/jrsteele09/go-stock-server/products"
	"github.com/jrsteele09/go-stock-server/products/filerepo"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRepo(t *testing.T) *filerepo.FileRepo {
	t.Helper()
	repo, err := filerepo.New(filepath.Join(t.TempDir(), "data", "db.json"))
	require.NoError(t, err)
	return repo
}

func readDocument(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestNew_InitialisesMissingFile(t *testing.T) {
	repo := newRepo(t)

	doc := readDocument(t, repo.Path())
	require.Equal(t, map[string]any{"products": []any{}}, doc)

	c, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, c.Products)
	require.Empty(t, c.Products)
}

func TestLoad_RecreatesDeletedFile(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, os.Remove(repo.Path()))

	c, err := repo.Load()
	require.NoError(t, err)
	require.Empty(t, c.Products)
	require.FileExists(t, repo.Path())
}

func TestLoad_EmptyFileIsInitialised(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	repo, err := filerepo.New(path)
	require.NoError(t, err)

	doc := readDocument(t, repo.Path())
	require.Equal(t, []any{}, doc["products"])
}

func TestLoad_CorruptFileIsAStorageFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	corrupt := []byte(`{"products": [ {"id": "1", `)
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	_, err := filerepo.New(path)
	require.ErrorIs(t, err, errors.ErrStorage)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, corrupt, data, "a corrupt file must not be overwritten")
}

func TestLoad_NullProductsIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products": null}`), 0o644))

	repo, err := filerepo.New(path)
	require.NoError(t, err)
	c, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, c.Products)
	require.Empty(t, c.Products)
}

func TestSave_RoundTrip(t *testing.T) {
	repo := newRepo(t)

	want := products.NewCollection()
	want.Products = append(want.Products,
		products.Product{ID: "1", SKU: "A1", Name: "Widget", Quantity: 5},
		products.Product{ID: "2", SKU: "B2", Name: "Gadget", Quantity: 0},
	)
	require.NoError(t, repo.Save(want))

	got, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)

	doc := readDocument(t, repo.Path())
	require.Equal(t, []any{
		map[string]any{"id": "1", "sku": "A1", "name": "Widget", "quantity": float64(5)},
		map[string]any{"id": "2", "sku": "B2", "name": "Gadget", "quantity": float64(0)},
	}, doc["products"])

	entries, err := os.ReadDir(filepath.Dir(repo.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files left behind")
}

func TestSave_UnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	repo := newRepo(t)
	dir := filepath.Dir(repo.Path())
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := repo.Save(products.NewCollection())
	require.ErrorIs(t, err, errors.ErrStorage)
}

func TestService_FailedDeleteLeavesFileByteIdentical(t *testing.T) {
	repo := newRepo(t)
	service := products.NewService(repo)

	_, err := service.Create(products.Input{SKU: "A1", Name: "Widget", Quantity: utils.Ptr(5)})
	require.NoError(t, err)

	before, err := os.ReadFile(repo.Path())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.ErrorIs(t, service.Delete("does-not-exist"), errors.ErrNotFound)
	}

	after, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestService_ConcurrentCreatesAgainstFile(t *testing.T) {
	repo := newRepo(t)
	service := products.NewService(repo)

	const workers = 10
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := service.Create(products.Input{SKU: fmt.Sprintf("S%d", i), Name: "Item", Quantity: utils.Ptr(i)})
			return err
		})
	}
	require.NoError(t, g.Wait())

	list, err := service.List()
	require.NoError(t, err)
	require.Len(t, list, workers)

	ids := map[string]struct{}{}
	for _, p := range list {
		ids[p.ID] = struct{}{}
	}
	require.Len(t, ids, workers)
}
