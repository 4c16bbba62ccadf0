package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Recettes"

var exportHeader = []any{"ID", "Nom", "Pays", "Catégorie", "Difficulté", "Temps", "Note", "Ingrédients"}

// ExportXLSX writes recipes as a one-sheet spreadsheet.
func ExportXLSX(w io.Writer, recipes []models.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", exportHeader); err != nil {
		return err
	}

	for i, r := range recipes {
		var rating any = ""
		if r.Rating != nil {
			rating = *r.Rating
		}
		values := []any{r.ID, r.Name, r.Country, r.Category, r.Difficulty, r.Time, rating, strings.Join(r.Ingredients, ", ")}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}
