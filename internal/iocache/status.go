package iocache

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SimoneSapienza/dev-wrapped/schema"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format(statusTimeFormat))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format(statusTimeFormat))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintExportStatus prints export store status information.
func PrintExportStatus(status schema.ExportStatus) {
	fmt.Printf("Export Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Schema Version: %d\n", status.SchemaVersion)

	years := make([]string, len(status.Years))
	for i, y := range status.Years {
		years[i] = fmt.Sprint(y)
	}
	if len(years) == 0 {
		fmt.Println("Exported Years: none")
	} else {
		fmt.Printf("Exported Years: %s\n", strings.Join(years, ", "))
		fmt.Printf("Last Export: %s\n", status.LastExport.Format(statusTimeFormat))
	}

	fmt.Println("Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}
