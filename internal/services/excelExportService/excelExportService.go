package excelexportservice

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hopcli/hop/internal/models"
	"github.com/xuri/excelize/v2"
)

const ServerSheetName = "Servers"

var ServerTableHeaders = []string{"Name", "User", "IP", "SSH Command"}

func ExportServers(servers []models.Server, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s, %w", dir, err)
		}
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", ServerSheetName); err != nil {
		return fmt.Errorf("error naming sheet, %w", err)
	}

	for i, header := range ServerTableHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(ServerSheetName, cell, header)
	}

	for i, server := range servers {
		row := i + 2 // excel is 1 indexed and row 1 holds the headers
		rowData := []interface{}{
			server.Name,
			server.User,
			server.Ip,
			server.SshCommand(),
		}

		if err := file.SetSheetRow(ServerSheetName, fmt.Sprintf("A%d", row), &rowData); err != nil {
			return fmt.Errorf("error writing row for %s, %w", server.Name, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save excel to %s, %w", path, err)
	}

	return nil
}
