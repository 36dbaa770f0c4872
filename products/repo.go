package products

// Repo loads and persists the whole Collection. There is no partial update:
// callers load, modify in memory and save the full result.
type Repo interface {
	Load() (*Collection, error)
	Save(c *Collection) error
}
