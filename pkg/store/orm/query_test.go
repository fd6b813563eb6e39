package orm

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/reportato/pkg/models/auth"
	"github.com/de-tools/reportato/pkg/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	mock sqlmock.Sqlmock
}

func setupFixture(t *testing.T) *fixture {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), Settings{}, zerolog.New(zerolog.NewTestWriter(t)))
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &fixture{db: db, mock: mock}
}

func TestQuerier_All(t *testing.T) {
	f := setupFixture(t)
	model := schema.MustParse(&auth.ContentType{})

	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `django_content_type`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "app_label", "model"}).
			AddRow(1, "auth", "permission").
			AddRow(2, "auth", "group"))

	items, err := NewQuerier(f.db).All(context.Background(), model)
	require.NoError(t, err)

	var got []string
	for item, err := range items {
		require.NoError(t, err)
		ct, ok := item.(*auth.ContentType)
		require.True(t, ok)
		got = append(got, ct.Model)
	}
	assert.Equal(t, []string{"permission", "group"}, got)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestQuerier_All_PreloadsRelations(t *testing.T) {
	f := setupFixture(t)
	model := schema.MustParse(&auth.Permission{})

	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `auth_permission` ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "content_type_id", "codename"}).
			AddRow(1, "Can add permission", 1, "add_permission").
			AddRow(2, "Can change permission", 1, "change_permission"))
	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `django_content_type` WHERE")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "app_label", "model"}).
			AddRow(1, "auth", "permission"))

	items, err := NewQuerier(f.db, OrderBy("id")).All(context.Background(), model)
	require.NoError(t, err)

	var got []string
	for item, err := range items {
		require.NoError(t, err)
		got = append(got, item.(*auth.Permission).String())
	}
	assert.Equal(t, []string{
		"auth | permission | Can add permission",
		"auth | permission | Can change permission",
	}, got)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestQuerier_All_Error(t *testing.T) {
	f := setupFixture(t)
	model := schema.MustParse(&auth.ContentType{})

	f.mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err := NewQuerier(f.db).All(context.Background(), model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load django_content_type")
}

func TestQuerier_With(t *testing.T) {
	base := NewQuerier(nil, OrderBy("id"))
	derived := base.With(Limit(5), Where("app_label = ?", "auth"))

	assert.Len(t, base.scopes, 1)
	assert.Len(t, derived.scopes, 3)
}

func TestDialector(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"mysql", Settings{Driver: "mysql", DSN: "user:pass@tcp(localhost:3306)/app"}, false},
		{"postgres", Settings{Driver: "postgres", DSN: "host=localhost dbname=app"}, false},
		{"unknown driver", Settings{Driver: "oracle", DSN: "x"}, true},
		{"empty dsn", Settings{Driver: "mysql"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Dialector(tc.settings)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.settings.Driver, d.Name())
		})
	}
}
