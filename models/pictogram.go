package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Pictogram is one ARASAAC symbol attached to a message. Identity is the
// upstream numeric id; two pictograms with the same ID are the same symbol
// no matter which query produced them.
type Pictogram struct {
	ID         int      `json:"id"`
	SearchText string   `json:"searchText"`
	Language   string   `json:"language"`
	Keywords   []string `json:"keywords"`
	ImageURL   string   `json:"imageUrl"`
}

// PictogramList is stored as a JSON text column.
type PictogramList []Pictogram

func (l PictogramList) Value() (driver.Value, error) {
	if l == nil {
		l = PictogramList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *PictogramList) Scan(src any) error {
	if src == nil {
		*l = PictogramList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported pictogram column type %T", src)
	}
	if len(data) == 0 {
		*l = PictogramList{}
		return nil
	}
	return json.Unmarshal(data, l)
}
