// Package schema exposes the field catalog of gorm model structs: the
// ordered field names, their human labels and whether a field is a plain
// column or a relation. Reporters resolve their fields and headers against
// it and read item values through it.
//
// Labels come from a `label` struct tag, falling back to the gorm `comment`
// tag:
//
//	type Permission struct {
//		ID       uint   `gorm:"primaryKey" label:"ID"`
//		Codename string `gorm:"size:100" label:"codename"`
//	}
package schema
