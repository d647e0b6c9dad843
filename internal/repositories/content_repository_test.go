package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coursehub/backend/internal/apperrors"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contentRowColumns = []string{"id", "course_id", "module_id", "owner_id", "visible", "item_type", "item_id", "sort_order"}

var itemRowColumns = []string{"id", "owner_id", "title", "value", "created_at", "updated_at"}

func TestContentRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		errorContains string
	}{
		{
			name: "image with item",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT ct.id, ct.course_id, ct.module_id, ct.owner_id, ct.visible, ct.item_type, ct.item_id, ct.sort_order FROM contents ct WHERE ct.id = \?`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(contentRowColumns).AddRow(1, 2, 3, 4, true, "image", 50, 1))
				mock.ExpectQuery(`SELECT id, owner_id, title, file_ref, created_at, updated_at FROM images WHERE id IN \(\?\)`).
					WithArgs(50).
					WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(50, 4, "Diagram", "images/d.png", time.Now(), time.Now()))
			},
		},
		{
			name: "envelope not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM contents ct WHERE ct.id = \?`).WithArgs(1).WillReturnError(sql.ErrNoRows)
			},
			expectedError: apperrors.ErrNotFound,
			errorContains: "content not found",
		},
		{
			name: "dangling item",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM contents ct WHERE ct.id = \?`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(contentRowColumns).AddRow(1, 2, 3, 4, true, "image", 50, 1))
				mock.ExpectQuery(`FROM images WHERE id IN`).
					WithArgs(50).
					WillReturnRows(sqlmock.NewRows(itemRowColumns))
			},
			errorContains: "references missing image 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			repo := NewContentRepository(db)

			tt.setupMock(mock)

			content, err := repo.GetByID(context.Background(), 1)

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
			} else {
				require.NoError(t, err)
				image, ok := content.Item.(*models.Image)
				require.True(t, ok)
				assert.Equal(t, "images/d.png", image.FileRef)
				assert.Equal(t, "Diagram", image.Title)

				downloadable, ok := content.Item.(models.Downloadable)
				require.True(t, ok)
				assert.Equal(t, "images/d.png", downloadable.FileReference())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestContentRepository_ListByModuleResolvesEveryKind(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewContentRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM contents ct WHERE ct.module_id = \? ORDER BY ct.sort_order`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(contentRowColumns).
			AddRow(1, 2, 3, 4, true, "text", 10, 1).
			AddRow(2, 2, 3, 4, false, "video", 20, 2).
			AddRow(3, 2, 3, 4, true, "text", 11, 3))
	mock.ExpectQuery(`SELECT id, owner_id, title, body, created_at, updated_at FROM texts WHERE id IN \(\?, \?\)`).
		WithArgs(10, 11).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).
			AddRow(10, 4, "Notes", "hello", now, now).
			AddRow(11, 4, "More", "world", now, now))
	mock.ExpectQuery(`SELECT id, owner_id, title, url, created_at, updated_at FROM videos WHERE id IN \(\?\)`).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(20, 4, "Talk", "https://v.example/1", now, now))

	contents, err := repo.ListByModule(context.Background(), 3, false)
	require.NoError(t, err)
	require.Len(t, contents, 3)

	assert.Equal(t, "hello", contents[0].Item.(*models.Text).Body)
	assert.Equal(t, "https://v.example/1", contents[1].Item.(*models.Video).URL)
	assert.Equal(t, "world", contents[2].Item.(*models.Text).Body)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_ListAvailable(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectQuery(`JOIN courses c ON c.id = ct.course_id WHERE ct.item_type = \?`).
		WithArgs("file", 4, 4, 4).
		WillReturnRows(sqlmock.NewRows(contentRowColumns))

	contents, err := repo.ListAvailable(context.Background(), 4, models.KindFile)
	require.NoError(t, err)
	assert.Empty(t, contents)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		errorContains string
	}{
		{
			name: "item first then envelope",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock, "modules", 3)
				mock.ExpectExec(`INSERT INTO videos \(owner_id, title, url\) VALUES \(\?, \?, \?\)`).
					WithArgs(4, "Talk", "https://v.example/1").
					WillReturnResult(sqlmock.NewResult(20, 1))
				mock.ExpectQuery(`SELECT COALESCE\(MAX\(sort_order\), 0\) FROM contents WHERE module_id = \?`).
					WithArgs(3).
					WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(2))
				mock.ExpectExec(`INSERT INTO contents \(course_id, module_id, owner_id, visible, item_type, item_id, sort_order\)`).
					WithArgs(2, 3, 4, true, "video", 20, 3).
					WillReturnResult(sqlmock.NewResult(7, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "envelope insert fails rolls back the item",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock, "modules", 3)
				mock.ExpectExec(`INSERT INTO videos`).WillReturnResult(sqlmock.NewResult(20, 1))
				mock.ExpectQuery(`SELECT COALESCE`).
					WithArgs(3).
					WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))
				mock.ExpectExec(`INSERT INTO contents`).WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			errorContains: "failed to create content",
		},
		{
			name: "item insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				expectLock(mock, "modules", 3)
				mock.ExpectExec(`INSERT INTO videos`).WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			errorContains: "failed to create video",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			repo := NewContentRepository(db)

			tt.setupMock(mock)

			content := &models.Content{
				CourseID: 2,
				ModuleID: 3,
				OwnerID:  4,
				Visible:  true,
				Item:     &models.Video{ItemHeader: models.ItemHeader{OwnerID: 4, Title: "Talk"}, URL: "https://v.example/1"},
			}
			err := repo.Create(context.Background(), content)

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 7, content.ID)
				assert.Equal(t, 20, content.ItemID)
				assert.Equal(t, models.KindVideo, content.ItemType)
				assert.Equal(t, 3, content.Order)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestContentRepository_Update(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE texts SET title = \?, body = \? WHERE id = \?`).
		WithArgs("Notes", "changed", 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE contents SET visible = \? WHERE id = \?`).
		WithArgs(false, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	content := &models.Content{
		ID:       1,
		ItemType: models.KindText,
		ItemID:   10,
		Item:     &models.Text{ItemHeader: models.ItemHeader{ID: 10, Title: "Notes"}, Body: "changed"},
	}
	require.NoError(t, repo.Update(context.Background(), content))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_DeleteRemovesImageRow(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	expectLock(mock, "modules", 3)
	mock.ExpectQuery(`SELECT sort_order FROM contents WHERE id = \? AND module_id = \?`).
		WithArgs(1, 3).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(2))
	mock.ExpectExec(`DELETE FROM images WHERE id = \?`).
		WithArgs(50).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM contents WHERE id = \?`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE contents SET sort_order = sort_order - 1 WHERE module_id = \? AND sort_order > \?`).
		WithArgs(3, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	content := &models.Content{ID: 1, ModuleID: 3, ItemType: models.KindImage, ItemID: 50}
	require.NoError(t, repo.Delete(context.Background(), content))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_MoveToFreeSlot(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	expectLock(mock, "modules", 3)
	mock.ExpectQuery(`SELECT sort_order FROM contents WHERE id = \? AND module_id = \?`).
		WithArgs(1, 3).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(1))
	mock.ExpectQuery(`SELECT id FROM contents WHERE module_id = \? AND sort_order = \?`).
		WithArgs(3, 9).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`UPDATE contents SET sort_order = \? WHERE id = \? AND module_id = \?`).
		WithArgs(9, 1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Move(context.Background(), 3, 1, 9))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_StepDownAtEnd(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	expectLock(mock, "modules", 3)
	mock.ExpectQuery(`SELECT sort_order FROM contents WHERE id = \? AND module_id = \?`).
		WithArgs(1, 3).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(4))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(sort_order\), 0\) FROM contents WHERE module_id = \?`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(4))
	mock.ExpectCommit()

	require.NoError(t, repo.Step(context.Background(), 3, 1, ordering.Down))

	assert.NoError(t, mock.ExpectationsWereMet())
}
