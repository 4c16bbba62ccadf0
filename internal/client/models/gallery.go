package models

// GalleryImage is one picture of the gallery view.
type GalleryImage struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Country     string `json:"country"`
	Category    string `json:"category"`
	Continent   string `json:"continent"`
}

func (g GalleryImage) SearchFields() []string {
	return []string{g.Title, g.Description, g.Country}
}

func (g GalleryImage) Facet(name string) (string, bool) {
	switch name {
	case "country":
		return g.Country, true
	case "category":
		return g.Category, true
	case "continent":
		return g.Continent, true
	}
	return "", false
}

// Minutes always reports false: pictures have no preparation time.
func (g GalleryImage) Minutes() (int, bool) {
	return 0, false
}
