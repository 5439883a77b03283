package register

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"
)

// Header is the first line of every log file.
const Header = "Fecha y Hora,Tipo de Proyecto,Nombre del Proyecto,Versión,Entorno"

// Layouts for the timestamp column and the log file name.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Record is a single row of the register. It is built once and never changed.
type Record struct {
	Timestamp   string
	ProjectType string
	Name        string
	Version     string
	Environment string
}

// NewRecord stamps a record with now, rendered in UTC.
func NewRecord(now time.Time, projectType, name, version, env string) Record {
	return Record{
		Timestamp:   now.UTC().Format(TimestampLayout),
		ProjectType: projectType,
		Name:        name,
		Version:     version,
		Environment: env,
	}
}

// Fields returns the columns in header order.
func (r Record) Fields() []string {
	return []string{r.Timestamp, r.ProjectType, r.Name, r.Version, r.Environment}
}

// Row serializes the record as one CSV line without the trailing newline.
// Plain fields are joined by commas; fields holding a comma, quote, or line
// break are quoted.
func (r Record) Row() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// Writes to a bytes.Buffer only fail on invalid delimiters.
	_ = w.Write(r.Fields())
	w.Flush()
	return strings.TrimSuffix(buf.String(), "\n")
}
