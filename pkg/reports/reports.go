package reports

import (
	"fmt"
	"strings"

	"github.com/de-tools/reportato/pkg/export"
	"github.com/de-tools/reportato/pkg/handlers/csvview"
	"github.com/de-tools/reportato/pkg/models/auth"
	"github.com/de-tools/reportato/pkg/reporter"
	"github.com/de-tools/reportato/pkg/schema"
	"github.com/de-tools/reportato/pkg/services/registry"
	"github.com/de-tools/reportato/pkg/store/orm"
	"gorm.io/gorm"
)

var (
	permissionModel = schema.MustParse(&auth.Permission{})
	groupModel      = schema.MustParse(&auth.Group{})
	userModel       = schema.MustParse(&auth.User{})
)

var (
	Permissions = reporter.MustDefine(permissionModel, reporter.Options{})

	PermissionCodes = reporter.MustDefine(permissionModel, reporter.Options{
		Fields: []string{"name", "codename"},
		Renderers: map[string]reporter.RenderFunc{
			"codename": reporter.Render(func(p *auth.Permission) string {
				return humanize(p.Codename)
			}),
		},
	})

	PermissionKeys = reporter.MustDefine(permissionModel, reporter.Options{
		CustomHeaders: map[string]string{
			"id":   "Key",
			"name": "Foo",
		},
	})

	Groups = reporter.MustDefine(groupModel, reporter.Options{
		Fields: []string{"name", "permissions"},
	})

	Users = reporter.MustDefine(userModel, reporter.Options{
		Fields: []string{"username", "email", "first_name", "last_name", "is_active", "date_joined", "groups"},
		Renderers: map[string]reporter.RenderFunc{
			"date_joined": reporter.Render(func(u *auth.User) string {
				return u.DateJoined.Format("2006-01-02")
			}),
		},
	})
)

func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Register adds the auth reports to r, reading items from db.
func Register(r registry.Registry, db *gorm.DB, factory export.WriterFactory) error {
	if factory == nil {
		factory = export.NewUnicodeWriter
	}
	byID := orm.NewQuerier(db, orm.OrderBy("id"))

	views := map[string]*csvview.View{
		"permissions":      csvview.NewView(Permissions, byID, csvview.WithWriter(factory), csvview.WithFileName("permissions.csv")),
		"permission-codes": csvview.NewView(PermissionCodes, byID, csvview.WithWriter(factory), csvview.WithFileName("permission-codes.csv")),
		"permission-keys":  csvview.NewView(PermissionKeys, byID, csvview.WithWriter(factory), csvview.WithFileName("permission-keys.csv"), csvview.WithoutHeader()),
		"groups": csvview.NewView(Groups, byID.With(orm.Preload("Permissions.ContentType")),
			csvview.WithWriter(factory), csvview.WithFileName("groups.csv")),
		"users": csvview.NewView(Users, byID.With(orm.Where("is_active = ?", true)),
			csvview.WithWriter(factory), csvview.WithFileName("users.csv")),
	}

	for name, view := range views {
		if err := r.Register(name, view); err != nil {
			return fmt.Errorf("failed to register report %s: %w", name, err)
		}
	}
	return nil
}
