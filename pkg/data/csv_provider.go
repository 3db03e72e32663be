package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rexaitrading/hybrid-ai-trading/pkg/types"
)

// Provider loads historical bars from a source identifier.
type Provider interface {
	GetName() string
	LoadData(source string) ([]types.OHLCV, error)
}

// CSVColumnMapping describes where each field lives in a CSV row.
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches the common exchange export layout:
// timestamp,open,high,low,close,volume with RFC3339 timestamps.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   time.RFC3339,
}

// CSVProvider implements Provider for CSV files.
type CSVProvider struct {
	format CSVColumnMapping
}

// NewCSVProvider creates a CSV provider with the default column layout.
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a CSV provider with a custom layout.
func NewCSVProviderWithFormat(format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{format: format}
}

func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadData reads all bars from the file. Rows that fail to parse or fail
// basic OHLC sanity checks are skipped, not fatal.
func (p *CSVProvider) LoadData(source string) ([]types.OHLCV, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	var data []types.OHLCV
	lineNum := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %v", lineNum, err)
		}
		lineNum++

		bar, ok := p.parseRow(record)
		if !ok {
			continue
		}
		data = append(data, bar)
	}

	return data, nil
}

func (p *CSVProvider) parseRow(record []string) (types.OHLCV, bool) {
	f := p.format
	if len(record) < f.MinColumns {
		return types.OHLCV{}, false
	}

	timestamp, err := time.Parse(f.DateFormat, record[f.TimestampCol])
	if err != nil {
		return types.OHLCV{}, false
	}

	open, err1 := strconv.ParseFloat(record[f.OpenCol], 64)
	high, err2 := strconv.ParseFloat(record[f.HighCol], 64)
	low, err3 := strconv.ParseFloat(record[f.LowCol], 64)
	closePrice, err4 := strconv.ParseFloat(record[f.CloseCol], 64)
	volume, err5 := strconv.ParseFloat(record[f.VolumeCol], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return types.OHLCV{}, false
	}

	if open <= 0 || high <= 0 || low <= 0 || closePrice <= 0 {
		return types.OHLCV{}, false
	}
	if high < open || high < closePrice || high < low {
		return types.OHLCV{}, false
	}
	if low > open || low > closePrice {
		return types.OHLCV{}, false
	}

	return types.OHLCV{
		Timestamp: timestamp,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
	}, true
}

// ValidateData checks the integrity of a loaded bar series.
func (p *CSVProvider) ValidateData(data []types.OHLCV) error {
	if len(data) == 0 {
		return fmt.Errorf("no data provided")
	}

	for i, candle := range data {
		if candle.Open <= 0 || candle.High <= 0 || candle.Low <= 0 || candle.Close <= 0 {
			return fmt.Errorf("invalid price data at index %d: prices must be positive", i)
		}
		if candle.High < candle.Low {
			return fmt.Errorf("invalid price data at index %d: high (%.4f) cannot be less than low (%.4f)",
				i, candle.High, candle.Low)
		}
		if i > 0 && candle.Timestamp.Before(data[i-1].Timestamp) {
			return fmt.Errorf("invalid timestamp sequence at index %d: timestamps must be in chronological order", i)
		}
	}

	return nil
}

// Returns converts a bar series into close-to-close simple returns.
func Returns(bars []types.OHLCV) []float64 {
	if len(bars) < 2 {
		return nil
	}
	out := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev <= 0 {
			continue
		}
		out = append(out, bars[i].Close/prev-1)
	}
	return out
}
