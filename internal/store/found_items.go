package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
)

const foundItemColumns = `id, reference_id, user_id, category, item_name, brand, color, location,
	date_found, description, image_mime, status, created_at`

func scanFoundItem(row interface{ Scan(...any) error }, item *model.FoundItem) error {
	var brand, imageMime sql.NullString
	err := row.Scan(&item.ID, &item.ReferenceID, &item.UserID, &item.Category, &item.ItemName,
		&brand, &item.Color, &item.Location, &item.DateFound, &item.Description,
		&imageMime, &item.Status, &item.CreatedAt)
	if err != nil {
		return err
	}
	item.Brand = brand.String
	item.ImageMime = imageMime.String
	return nil
}

// CreateFoundItem stores a new found item report with a fresh reference ID.
func CreateFoundItem(ctx context.Context, db *sql.DB, item *model.FoundItem) (*model.FoundItem, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO found_items (reference_id, user_id, category, item_name, brand, color, location,
		                          date_found, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		newReference("FND"), item.UserID, item.Category, item.ItemName, nullString(item.Brand),
		item.Color, item.Location, item.DateFound, item.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("creating found item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting found item id: %w", err)
	}

	return GetFoundItem(ctx, db, id)
}

// GetFoundItem returns a found item by ID.
func GetFoundItem(ctx context.Context, db *sql.DB, id int64) (*model.FoundItem, error) {
	item := &model.FoundItem{}
	err := scanFoundItem(db.QueryRowContext(ctx,
		`SELECT `+foundItemColumns+` FROM found_items WHERE id = ?`, id,
	), item)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting found item: %w", err)
	}
	return item, nil
}

// ListFoundItems returns found items, newest first. A zero userID lists every
// user's items; an empty status lists all statuses.
func ListFoundItems(ctx context.Context, db *sql.DB, userID int64, status string) ([]model.FoundItem, error) {
	query := `SELECT ` + foundItemColumns + ` FROM found_items WHERE 1 = 1`
	var args []any
	if userID != 0 {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return queryFoundItems(ctx, db, query, args...)
}

// ListFoundCandidates returns active found items in the given category.
func ListFoundCandidates(ctx context.Context, db *sql.DB, category string) ([]model.FoundItem, error) {
	return queryFoundItems(ctx, db,
		`SELECT `+foundItemColumns+` FROM found_items
		 WHERE lower(category) = lower(?) AND status = ? ORDER BY id`,
		strings.TrimSpace(category), model.FoundStatusActive,
	)
}

func queryFoundItems(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.FoundItem, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing found items: %w", err)
	}
	defer rows.Close()

	var items []model.FoundItem
	for rows.Next() {
		var item model.FoundItem
		if err := scanFoundItem(rows, &item); err != nil {
			return nil, fmt.Errorf("scanning found item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateFoundItem replaces the details of an active found item that has no
// matches.
func UpdateFoundItem(ctx context.Context, db *sql.DB, item *model.FoundItem) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE found_items SET category = ?, item_name = ?, brand = ?, color = ?, location = ?,
		                        date_found = ?, description = ?
		 WHERE id = ? AND status = ?
		   AND NOT EXISTS (SELECT 1 FROM matches WHERE found_item_id = found_items.id)`,
		item.Category, item.ItemName, nullString(item.Brand), item.Color, item.Location,
		item.DateFound, item.Description,
		item.ID, model.FoundStatusActive,
	)
	if err != nil {
		return false, fmt.Errorf("updating found item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating found item: %w", err)
	}
	return n > 0, nil
}

// SetFoundItemStatus moves a found item from one status to another.
func SetFoundItemStatus(ctx context.Context, db *sql.DB, id int64, from, to string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE found_items SET status = ? WHERE id = ? AND status = ?`, to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("setting found item status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("setting found item status: %w", err)
	}
	return n > 0, nil
}

// SetFoundItemImage sets a found item's photo.
func SetFoundItemImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE found_items SET image = ?, image_mime = ? WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting found item image: %w", err)
	}
	return nil
}

// GetFoundItemImage returns a found item's photo and MIME type.
func GetFoundItemImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM found_items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting found item image: %w", err)
	}
	return image, mime.String, nil
}
