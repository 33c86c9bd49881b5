package repo

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// stringList and intList are stored as native arrays on postgres and as
// array literals in a text column elsewhere.

type stringList []string

func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		return "{}", nil
	}
	return pq.StringArray(l).Value()
}

func (l *stringList) Scan(src any) error {
	var a pq.StringArray
	if err := a.Scan(src); err != nil {
		return err
	}
	*l = stringList(a)
	return nil
}

func (stringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

type intList []int

func (l intList) Value() (driver.Value, error) {
	a := make(pq.Int64Array, len(l))
	for i, v := range l {
		a[i] = int64(v)
	}
	return a.Value()
}

func (l *intList) Scan(src any) error {
	var a pq.Int64Array
	if err := a.Scan(src); err != nil {
		return err
	}
	out := make(intList, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	*l = out
	return nil
}

func (intList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "bigint[]"
	}
	return "text"
}
