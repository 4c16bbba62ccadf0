package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
)

var errNoTable = errors.New("no table with a header row")

// row maps a canonical column name to its cell text.
type row map[string]string

// headerAliases maps the accepted column titles to canonical names.
var headerAliases = map[string]string{
	"id":          "id",
	"#":           "id",
	"name":        "name",
	"nom":         "name",
	"title":       "title",
	"titre":       "title",
	"country":     "country",
	"pays":        "country",
	"region":      "region",
	"région":      "region",
	"category":    "category",
	"catégorie":   "category",
	"categorie":   "category",
	"type":        "category",
	"difficulty":  "difficulty",
	"difficulté":  "difficulty",
	"difficulte":  "difficulty",
	"time":        "time",
	"temps":       "time",
	"durée":       "time",
	"description": "description",
	"image":       "image",
	"photo":       "image",
	"rating":      "rating",
	"note":        "rating",
	"ingredients": "ingredients",
	"ingrédients": "ingredients",
	"continent":   "continent",
}

// scrapeTable reads the first table of an HTML document. Columns are
// identified by their header titles; unknown columns are ignored.
func scrapeTable(data []byte) ([]row, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errNoTable
	}

	headers := table.Find("thead th")
	body := table.Find("tbody > tr")
	if headers.Length() == 0 {
		first := table.Find("tr").First()
		headers = first.Find("th")
		body = first.NextAll()
	}
	if headers.Length() == 0 {
		return nil, errNoTable
	}

	columns := make([]string, headers.Length())
	headers.Each(func(i int, s *goquery.Selection) {
		columns[i] = headerAliases[strings.ToLower(strings.TrimSpace(s.Text()))]
	})

	rows := make([]row, 0, body.Length())
	body.Each(func(_ int, tr *goquery.Selection) {
		r := row{}
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i >= len(columns) || columns[i] == "" {
				return
			}
			text := condense(td.Text())
			if columns[i] == "image" {
				if src, ok := td.Find("img").Attr("src"); ok {
					text = strings.TrimSpace(src)
				}
			}
			r[columns[i]] = text
		})
		if len(r) > 0 {
			rows = append(rows, r)
		}
	})
	return rows, nil
}

func condense(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (r row) withDefaultID(id int) row {
	if r["id"] == "" {
		r["id"] = strconv.Itoa(id)
	}
	return r
}

func (r row) id() (int, error) {
	id, err := strconv.Atoi(r["id"])
	if err != nil {
		return 0, fmt.Errorf("bad id %q", r["id"])
	}
	return id, nil
}

func recipeFromRow(r row) (models.Recipe, error) {
	id, err := r.id()
	if err != nil {
		return models.Recipe{}, err
	}
	name := r["name"]
	if name == "" {
		name = r["title"]
	}

	rec := models.Recipe{
		ID:          id,
		Name:        name,
		Country:     r["country"],
		Region:      r["region"],
		Category:    r["category"],
		Difficulty:  r["difficulty"],
		Time:        r["time"],
		Description: r["description"],
		Image:       r["image"],
		Continent:   r["continent"],
	}

	if v := r["rating"]; v != "" {
		f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
		if err != nil {
			return models.Recipe{}, fmt.Errorf("bad rating %q", v)
		}
		rec.Rating = &f
	}
	if v := r["ingredients"]; v != "" {
		for _, ing := range strings.Split(v, ",") {
			if ing = strings.TrimSpace(ing); ing != "" {
				rec.Ingredients = append(rec.Ingredients, ing)
			}
		}
	}
	return rec, nil
}

func galleryFromRow(r row) (models.GalleryImage, error) {
	id, err := r.id()
	if err != nil {
		return models.GalleryImage{}, err
	}
	title := r["title"]
	if title == "" {
		title = r["name"]
	}
	return models.GalleryImage{
		ID:          id,
		Title:       title,
		Description: r["description"],
		Image:       r["image"],
		Country:     r["country"],
		Category:    r["category"],
		Continent:   r["continent"],
	}, nil
}
