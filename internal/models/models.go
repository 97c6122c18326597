// package models defines the data model for the Torrentio catalog client
package models

// Entity is implemented by every catalog record fetched from the remote API.
// Entities are immutable once fetched; derivations only read them.
type Entity interface {
	EntityID() string // EntityID returns the globally unique identifier assigned by the source
}

// Requirements describes the hardware a game needs to run.
type Requirements struct {
	GPU string `json:"gpu"`
	RAM string `json:"ram"`
	CPU string `json:"cpu"`
}

// Game represents a catalog game entry as served by the remote API.
type Game struct {
	ID           string       `json:"_id"`
	Title        string       `json:"title"`
	Genre        string       `json:"genre"`
	Description  string       `json:"description"`
	Requirements Requirements `json:"requirements"`
	Image        string       `json:"image"`
	Video        string       `json:"video"`
	Download     string       `json:"download"`
}

func (g Game) EntityID() string { return g.ID }

// Developer represents a game studio entry as served by the remote API.
type Developer struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Founded int    `json:"founded"`
	Country string `json:"country"`
}

func (d Developer) EntityID() string { return d.ID }

// User represents the identity created by a successful registration.
type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func (u User) EntityID() string { return u.ID }

// CatalogExport bundles a catalog view for export: the games it contains plus
// the label and filter that produced it.
type CatalogExport struct {
	Label      string      `json:"label"`
	Genre      string      `json:"genre,omitempty"`
	Games      []Game      `json:"games"`
	Developers []Developer `json:"developers,omitempty"`
}

// Repository defines the interface for local cache access.
// Implementations handle database interactions for specific entity types.
type Repository[E Entity] interface {
	Upsert(ent *E) error       // Upsert inserts or replaces a cached entity, assigning a generated id when ent has none
	Get(id string) (E, error)  // Get retrieves a cached entity by its ID
	Delete(id string) error    // Delete removes a cached entity by its ID
	List() ([]E, error)        // List retrieves all cached entities in insertion order
	ReplaceAll(ents []E) error // ReplaceAll swaps the cached collection wholesale
}
