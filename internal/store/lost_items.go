package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
)

const lostItemColumns = `id, reference_id, user_id, category, item_name, brand, color, location,
	date_lost, description, additional_info, image_mime, status, created_at`

func scanLostItem(row interface{ Scan(...any) error }, item *model.LostItem) error {
	var brand, info, imageMime sql.NullString
	err := row.Scan(&item.ID, &item.ReferenceID, &item.UserID, &item.Category, &item.ItemName,
		&brand, &item.Color, &item.Location, &item.DateLost, &item.Description, &info,
		&imageMime, &item.Status, &item.CreatedAt)
	if err != nil {
		return err
	}
	item.Brand = brand.String
	item.AdditionalInfo = info.String
	item.ImageMime = imageMime.String
	return nil
}

// newReference returns a short public identifier such as LST-1A2B3C4D5E6F.
func newReference(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(id[:12])
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateLostItem stores a new lost item report with a fresh reference ID.
func CreateLostItem(ctx context.Context, db *sql.DB, item *model.LostItem) (*model.LostItem, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO lost_items (reference_id, user_id, category, item_name, brand, color, location,
		                         date_lost, description, additional_info)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		newReference("LST"), item.UserID, item.Category, item.ItemName, nullString(item.Brand),
		item.Color, item.Location, item.DateLost, item.Description, nullString(item.AdditionalInfo),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lost item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting lost item id: %w", err)
	}

	return GetLostItem(ctx, db, id)
}

// GetLostItem returns a lost item by ID.
func GetLostItem(ctx context.Context, db *sql.DB, id int64) (*model.LostItem, error) {
	item := &model.LostItem{}
	err := scanLostItem(db.QueryRowContext(ctx,
		`SELECT `+lostItemColumns+` FROM lost_items WHERE id = ?`, id,
	), item)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting lost item: %w", err)
	}
	return item, nil
}

// ListLostItems returns lost items, newest first. A zero userID lists every
// user's items; an empty status lists all statuses.
func ListLostItems(ctx context.Context, db *sql.DB, userID int64, status string) ([]model.LostItem, error) {
	query := `SELECT ` + lostItemColumns + ` FROM lost_items WHERE 1 = 1`
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

	return queryLostItems(ctx, db, query, args...)
}

// ListLostCandidates returns searching lost items in the given category.
func ListLostCandidates(ctx context.Context, db *sql.DB, category string) ([]model.LostItem, error) {
	return queryLostItems(ctx, db,
		`SELECT `+lostItemColumns+` FROM lost_items
		 WHERE lower(category) = lower(?) AND status = ? ORDER BY id`,
		strings.TrimSpace(category), model.LostStatusSearching,
	)
}

func queryLostItems(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.LostItem, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing lost items: %w", err)
	}
	defer rows.Close()

	var items []model.LostItem
	for rows.Next() {
		var item model.LostItem
		if err := scanLostItem(rows, &item); err != nil {
			return nil, fmt.Errorf("scanning lost item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateLostItem replaces the details of a searching lost item that has no
// matches. It reports false if the item is missing, matched or no longer
// searching.
func UpdateLostItem(ctx context.Context, db *sql.DB, item *model.LostItem) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE lost_items SET category = ?, item_name = ?, brand = ?, color = ?, location = ?,
		                       date_lost = ?, description = ?, additional_info = ?
		 WHERE id = ? AND status = ?
		   AND NOT EXISTS (SELECT 1 FROM matches WHERE lost_item_id = lost_items.id)`,
		item.Category, item.ItemName, nullString(item.Brand), item.Color, item.Location,
		item.DateLost, item.Description, nullString(item.AdditionalInfo),
		item.ID, model.LostStatusSearching,
	)
	if err != nil {
		return false, fmt.Errorf("updating lost item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating lost item: %w", err)
	}
	return n > 0, nil
}

// SetLostItemStatus moves a lost item from one status to another. It reports
// false if the item was not in the from status.
func SetLostItemStatus(ctx context.Context, db *sql.DB, id int64, from, to string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE lost_items SET status = ? WHERE id = ? AND status = ?`, to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("setting lost item status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("setting lost item status: %w", err)
	}
	return n > 0, nil
}

// SetLostItemImage sets a lost item's photo.
func SetLostItemImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE lost_items SET image = ?, image_mime = ? WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting lost item image: %w", err)
	}
	return nil
}

// GetLostItemImage returns a lost item's photo and MIME type.
func GetLostItemImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM lost_items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting lost item image: %w", err)
	}
	return image, mime.String, nil
}
