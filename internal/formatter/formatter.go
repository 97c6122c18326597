// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/shared"
)

// ExportGamesToCSV converts the games of a CatalogExport to CSV format with
// columns: ID, Title, Genre, GPU, RAM, CPU, Download
func ExportGamesToCSV(export *models.CatalogExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Genre", "GPU", "RAM", "CPU", "Download"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, game := range export.Games {
		record := []string{
			game.ID,
			game.Title,
			game.Genre,
			game.Requirements.GPU,
			game.Requirements.RAM,
			game.Requirements.CPU,
			game.Download,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportDevelopersToCSV converts the developers of a CatalogExport to CSV
// format with columns: ID, Name, Founded, Country
func ExportDevelopersToCSV(export *models.CatalogExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Founded", "Country"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, dev := range export.Developers {
		record := []string{
			dev.ID,
			dev.Name,
			strconv.Itoa(dev.Founded),
			dev.Country,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a CatalogExport to Markdown format with optional cover image
func ExportToMarkdown(export *models.CatalogExport, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Label))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if export.Genre != "" {
		buf.WriteString(fmt.Sprintf("**Genre**: %s\n\n", export.Genre))
	}

	buf.WriteString(fmt.Sprintf("**Games**: %d\n\n", len(export.Games)))

	buf.WriteString("## Games\n\n")
	for i, game := range export.Games {
		genrePart := ""
		if game.Genre != "" {
			genrePart = fmt.Sprintf(" (%s)", game.Genre)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, game.Title, genrePart))
	}

	if len(export.Developers) > 0 {
		buf.WriteString("\n## Developers\n\n")
		for i, dev := range export.Developers {
			buf.WriteString(fmt.Sprintf("%d. %s (%d, %s)\n", i+1, dev.Name, dev.Founded, dev.Country))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a CatalogExport to plain text format
func ExportToText(export *models.CatalogExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Catalog: %s\n", export.Label))
	if export.Genre != "" {
		buf.WriteString(fmt.Sprintf("Genre: %s\n", export.Genre))
	}
	buf.WriteString(fmt.Sprintf("Games: %d\n\n", len(export.Games)))

	for i, game := range export.Games {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, game.Title, game.Genre))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of export metadata (without entries)
func ToMetadataJSON(export *models.CatalogExport) ([]byte, error) {
	metadata := struct {
		Label      string `json:"label"`
		Genre      string `json:"genre,omitempty"`
		Games      int    `json:"games"`
		Developers int    `json:"developers"`
	}{
		Label:      export.Label,
		Genre:      export.Genre,
		Games:      len(export.Games),
		Developers: len(export.Developers),
	}
	return shared.MarshalJSON(metadata, true)
}

// ExportToJSON converts a CatalogExport to indented JSON
func ExportToJSON(export *models.CatalogExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// WriteJSONExport exports a catalog to a JSON file.
//
// Defaults to {label}.json as the filename.
func WriteJSONExport(export *models.CatalogExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = export.Label + ".json"
	}

	jsonData, err := ExportToJSON(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(filepath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return filepath, nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	GamesFile      string
	DevelopersFile string
	MetadataFile   string
}

// WriteCSVExport exports a catalog to CSV format with an accompanying metadata JSON file.
//
// Defaults to the export label as the base filename & creates {base}_games.csv,
// {base}_developers.csv (when developers are present) and {base}_metadata.json
func WriteCSVExport(export *models.CatalogExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Label
	}

	csvData, err := ExportGamesToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	gamesFile := baseFilepath + "_games.csv"
	if err := os.WriteFile(gamesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	result := &CSVExportResult{GamesFile: gamesFile}

	if len(export.Developers) > 0 {
		devData, err := ExportDevelopersToCSV(export)
		if err != nil {
			return nil, fmt.Errorf("failed to generate developers CSV: %w", err)
		}

		devsFile := baseFilepath + "_developers.csv"
		if err := os.WriteFile(devsFile, devData, 0644); err != nil {
			return nil, fmt.Errorf("failed to write developers CSV file: %w", err)
		}
		result.DevelopersFile = devsFile
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}
	result.MetadataFile = metadataFile

	return result, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a catalog to Markdown format in a dedicated directory.
//
// Directory name defaults to the export label.
// The imageURL parameter is optional - if provided, attempts to download a cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(export *models.CatalogExport, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = export.Label
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(export, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a catalog to plain text format.
//
// Defaults to {label}_games.txt as the filename.
func WriteTextExport(export *models.CatalogExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_games.txt", export.Label)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
