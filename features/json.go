package features

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
)

// jsonDataset is the on-disk document shape.
type jsonDataset struct {
	Name    string       `json:"name,omitempty"`
	IDField string       `json:"id_field,omitempty"`
	Fields  []string     `json:"fields,omitempty"`
	Records []jsonRecord `json:"records"`
}

type jsonRecord struct {
	ID        int                `json:"id"`
	X         *float64           `json:"x,omitempty"`
	Y         *float64           `json:"y,omitempty"`
	Values    map[string]float64 `json:"values"`
	Neighbors []int              `json:"neighbors,omitempty"`
}

// DecodeJSON reads a dataset document:
//
//	{"name": "columbus", "id_field": "POLYID", "fields": ["CRIME", "INC"],
//	 "records": [{"id": 1, "x": 8.8, "y": 14.3,
//	              "values": {"CRIME": 15.7, "INC": 19.5}, "neighbors": [2, 3]}]}
//
// fields is optional; without it the field set is the sorted keys of the
// first record. Every record must carry every field. Coordinates are kept
// only when every record has both x and y; adjacency only when some record
// lists neighbors.
func DecodeJSON(r io.Reader) (*Dataset, error) {
	var doc jsonDataset
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	fields := doc.Fields
	if len(fields) == 0 && len(doc.Records) > 0 {
		for name := range doc.Records[0].Values {
			fields = append(fields, name)
		}
		sort.Strings(fields)
	}

	ids := make([]int, len(doc.Records))
	hasXY, hasAdj := len(doc.Records) > 0, false
	for i, rec := range doc.Records {
		ids[i] = rec.ID
		if rec.X == nil || rec.Y == nil {
			hasXY = false
		}
		if rec.Neighbors != nil {
			hasAdj = true
		}
	}

	ds := NewDataset(doc.Name, doc.IDField, ids)
	for _, name := range fields {
		col := make([]float64, len(doc.Records))
		for i, rec := range doc.Records {
			v, ok := rec.Values[name]
			if !ok {
				return nil, fmt.Errorf("%w: record %d has no field %q", ErrInvalidDataset, rec.ID, name)
			}
			col[i] = v
		}
		if err := ds.AddField(name, col); err != nil {
			return nil, err
		}
	}
	if hasXY {
		ds.Coords = make([][2]float64, len(doc.Records))
		for i, rec := range doc.Records {
			ds.Coords[i] = [2]float64{*rec.X, *rec.Y}
		}
	}
	if hasAdj {
		ds.Adjacency = make(map[int][]int, len(doc.Records))
		for _, rec := range doc.Records {
			ds.Adjacency[rec.ID] = append([]int{}, rec.Neighbors...)
		}
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// EncodeJSON writes ds in the DecodeJSON document shape.
func EncodeJSON(w io.Writer, ds *Dataset) error {
	doc := jsonDataset{Name: ds.Name, IDField: ds.IDField, Fields: ds.FieldNames()}
	doc.Records = make([]jsonRecord, len(ds.IDs))
	for i, id := range ds.IDs {
		rec := jsonRecord{ID: id, Values: make(map[string]float64, len(doc.Fields))}
		for _, name := range doc.Fields {
			rec.Values[name] = ds.columns[name][i]
		}
		if ds.Coords != nil {
			x, y := ds.Coords[i][0], ds.Coords[i][1]
			rec.X, rec.Y = &x, &y
		}
		if ds.Adjacency != nil {
			rec.Neighbors = ds.Adjacency[id]
		}
		doc.Records[i] = rec
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// LoadJSONFile decodes the dataset document at path.
func LoadJSONFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeJSON(f)
}

// SaveJSONFile encodes ds to path.
func SaveJSONFile(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeJSON(f, ds); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
