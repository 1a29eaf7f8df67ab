package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-screener/src/models"
)

func ContractCsvRows(contracts []models.EvaluatedContract) []*models.ContractCsvDTO {
	rows := make([]*models.ContractCsvDTO, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, models.NewContractCsvDTO(c))
	}

	return rows
}

func SpreadCsvRows(spreads []models.WingedSpread) []*models.SpreadCsvDTO {
	rows := make([]*models.SpreadCsvDTO, 0, len(spreads))
	for _, s := range spreads {
		rows = append(rows, models.NewSpreadCsvDTO(s))
	}

	return rows
}

// WriteScreeningCsv writes the contracts or, for combination strategies, the spreads of a result.
func WriteScreeningCsv(result *models.ScreeningResult, w io.Writer) error {
	if result.Strategy.IsSpread() {
		rows := SpreadCsvRows(result.Spreads)
		return gocsv.Marshal(&rows, w)
	}

	rows := ContractCsvRows(result.Contracts)
	return gocsv.Marshal(&rows, w)
}

// ExportScreeningCsv writes result to outDir, named after the ticker, strategy and run id.
func ExportScreeningCsv(result *models.ScreeningResult, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("ExportScreeningCsv: failed to create %s: %w", outDir, err)
	}

	outFile := filepath.Join(outDir, fmt.Sprintf("%s-%s-%s.csv", result.Ticker, result.Strategy, result.RunID))

	file, err := os.Create(outFile)
	if err != nil {
		return "", fmt.Errorf("ExportScreeningCsv: error creating CSV file: %w", err)
	}

	defer file.Close()

	if err := WriteScreeningCsv(result, file); err != nil {
		return "", fmt.Errorf("ExportScreeningCsv: %w", err)
	}

	log.Infof("Exported %s %s screening to %s", result.Ticker, result.Strategy, outFile)

	return outFile, nil
}
