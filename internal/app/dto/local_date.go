package dto

import (
	"bytes"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

const localDateLayout = "2006-01-02"

// LocalDate is a calendar date serialized as "YYYY-MM-DD".
type LocalDate time.Time

func NewLocalDate(d datatypes.Date) LocalDate {
	return LocalDate(time.Time(d))
}

func (d LocalDate) Date() datatypes.Date {
	y, m, day := time.Time(d).Date()
	return datatypes.Date(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

func (d LocalDate) String() string {
	return time.Time(d).Format(localDateLayout)
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *LocalDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("fecha inválida %s: se espera \"YYYY-MM-DD\"", data)
	}
	t, err := time.Parse(localDateLayout, string(data[1:len(data)-1]))
	if err != nil {
		return fmt.Errorf("fecha inválida %s: %w", data, err)
	}
	*d = LocalDate(t)
	return nil
}
