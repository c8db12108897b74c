package vehicle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averyclark/porchlight/internal/platform/database/schema"
	"github.com/averyclark/porchlight/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var vehicleColumns = strings.Join([]string{
	"v." + schema.ContentVehicle.ID,
	"v." + schema.ContentVehicle.Slug,
	"v." + schema.ContentVehicle.Name,
	"v." + schema.ContentVehicle.Category,
	"v." + schema.ContentVehicle.HeroImage,
	"v." + schema.ContentVehicle.Gallery,
	"v." + schema.ContentVehicle.Story,
	"v." + schema.ContentVehicle.CreatedAt,
	"v." + schema.ContentVehicle.UpdatedAt,
}, ", ")

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	v := &Vehicle{}
	err := row.Scan(
		&v.ID, &v.Slug, &v.Name, &v.Category, &v.HeroImage,
		&v.Gallery, &v.Story, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if v.Gallery == nil {
		v.Gallery = []string{}
	}
	if v.Story == nil {
		v.Story = []string{}
	}
	return v, nil
}

func (repository *PostgresRepository) List(ctx context.Context, f Filter, limit, offset int) ([]*Vehicle, int, error) {
	where := "TRUE"
	args := []any{}
	if f.Category != "" {
		args = append(args, f.Category)
		where = fmt.Sprintf("v.%s = $1", schema.ContentVehicle.Category)
	}

	countQuery := fmt.Sprintf("SELECT count(*) FROM %s v WHERE %s", schema.ContentVehicle.Table, where)
	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_vehicles")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s v
		WHERE %s
		ORDER BY v.%s ASC
		LIMIT $%d OFFSET $%d`,
		vehicleColumns, schema.ContentVehicle.Table,
		where,
		schema.ContentVehicle.CreatedAt,
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_vehicles")
	}
	defer rows.Close()

	vehicles := make([]*Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_vehicle")
		}
		vehicles = append(vehicles, v)
	}

	for _, v := range vehicles {
		if err := repository.loadChildren(ctx, v); err != nil {
			return nil, 0, err
		}
	}
	return vehicles, total, nil
}

func (repository *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Vehicle, error) {
	query := fmt.Sprintf("SELECT %s FROM %s v WHERE v.%s = $1",
		vehicleColumns, schema.ContentVehicle.Table, schema.ContentVehicle.Slug)

	v, err := scanVehicle(repository.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_vehicle")
	}

	if err := repository.loadChildren(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (repository *PostgresRepository) loadChildren(ctx context.Context, v *Vehicle) error {
	specQuery := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.ContentVehicleSpec.Label, schema.ContentVehicleSpec.Value, schema.ContentVehicleSpec.SortOrder,
		schema.ContentVehicleSpec.Table, schema.ContentVehicleSpec.VehicleID, schema.ContentVehicleSpec.SortOrder,
	)
	rows, err := repository.db.Query(ctx, specQuery, v.ID)
	if err != nil {
		return dberr.Wrap(err, "list_vehicle_specs")
	}
	defer rows.Close()

	v.Specs = make([]Spec, 0)
	for rows.Next() {
		var spec Spec
		if err := rows.Scan(&spec.Label, &spec.Value, &spec.Order); err != nil {
			return dberr.Wrap(err, "scan_vehicle_spec")
		}
		v.Specs = append(v.Specs, spec)
	}
	rows.Close()

	modQuery := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.ContentVehicleMod.Category, schema.ContentVehicleMod.Items, schema.ContentVehicleMod.SortOrder,
		schema.ContentVehicleMod.Table, schema.ContentVehicleMod.VehicleID, schema.ContentVehicleMod.SortOrder,
	)
	rows, err = repository.db.Query(ctx, modQuery, v.ID)
	if err != nil {
		return dberr.Wrap(err, "list_vehicle_mods")
	}
	defer rows.Close()

	v.Modifications = make([]Modification, 0)
	for rows.Next() {
		var mod Modification
		if err := rows.Scan(&mod.Category, &mod.Items, &mod.Order); err != nil {
			return dberr.Wrap(err, "scan_vehicle_mod")
		}
		if mod.Items == nil {
			mod.Items = []string{}
		}
		v.Modifications = append(v.Modifications, mod)
	}
	return nil
}

func (repository *PostgresRepository) Create(ctx context.Context, v *Vehicle) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin create transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s`,
		schema.ContentVehicle.Table,
		schema.ContentVehicle.ID, schema.ContentVehicle.Slug, schema.ContentVehicle.Name,
		schema.ContentVehicle.Category, schema.ContentVehicle.HeroImage,
		schema.ContentVehicle.Gallery, schema.ContentVehicle.Story,
		schema.ContentVehicle.CreatedAt, schema.ContentVehicle.UpdatedAt,
		schema.ContentVehicle.CreatedAt, schema.ContentVehicle.UpdatedAt,
	)
	err = transaction.QueryRow(ctx, query,
		v.ID, v.Slug, v.Name, v.Category, v.HeroImage, v.Gallery, v.Story,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_vehicle")
	}

	if err := repository.writeChildren(ctx, transaction, v); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, v *Vehicle) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin update transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentVehicle.Table,
		schema.ContentVehicle.Name, schema.ContentVehicle.Category, schema.ContentVehicle.HeroImage,
		schema.ContentVehicle.Gallery, schema.ContentVehicle.Story, schema.ContentVehicle.UpdatedAt,
		schema.ContentVehicle.ID,
		schema.ContentVehicle.UpdatedAt,
	)
	err = transaction.QueryRow(ctx, query,
		v.ID, v.Name, v.Category, v.HeroImage, v.Gallery, v.Story,
	).Scan(&v.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_vehicle")
	}

	// Full-replace semantics for the spec sheet and modification groups.
	for _, child := range []struct{ table, fk string }{
		{schema.ContentVehicleSpec.Table, schema.ContentVehicleSpec.VehicleID},
		{schema.ContentVehicleMod.Table, schema.ContentVehicleMod.VehicleID},
	} {
		clearQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", child.table, child.fk)
		if _, err := transaction.Exec(ctx, clearQuery, v.ID); err != nil {
			return fmt.Errorf("postgres: failed to clear %s: %w", child.table, err)
		}
	}
	if err := repository.writeChildren(ctx, transaction, v); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) writeChildren(ctx context.Context, transaction pgx.Tx, v *Vehicle) error {
	batch := &pgx.Batch{}

	specQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.ContentVehicleSpec.Table,
		schema.ContentVehicleSpec.VehicleID, schema.ContentVehicleSpec.Label,
		schema.ContentVehicleSpec.Value, schema.ContentVehicleSpec.SortOrder,
	)
	for _, spec := range v.Specs {
		batch.Queue(specQuery, v.ID, spec.Label, spec.Value, spec.Order)
	}

	modQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.ContentVehicleMod.Table,
		schema.ContentVehicleMod.VehicleID, schema.ContentVehicleMod.Category,
		schema.ContentVehicleMod.Items, schema.ContentVehicleMod.SortOrder,
	)
	for _, mod := range v.Modifications {
		batch.Queue(modQuery, v.ID, mod.Category, mod.Items, mod.Order)
	}

	if batch.Len() == 0 {
		return nil
	}

	results := transaction.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return fmt.Errorf("postgres: failed to write vehicle children: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, slug string) error {
	// Specs, mods, posts and post tag connections cascade via foreign keys.
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ContentVehicle.Table, schema.ContentVehicle.Slug)

	cmd, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_vehicle")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

var postColumns = strings.Join([]string{
	"p." + schema.ContentVehiclePost.ID,
	"p." + schema.ContentVehiclePost.VehicleID,
	"p." + schema.ContentVehiclePost.Slug,
	"p." + schema.ContentVehiclePost.Title,
	"p." + schema.ContentVehiclePost.Excerpt,
	"p." + schema.ContentVehiclePost.Content,
	"p." + schema.ContentVehiclePost.HeroImage,
	"p." + schema.ContentVehiclePost.Published,
	"p." + schema.ContentVehiclePost.Featured,
	"p." + schema.ContentVehiclePost.PublishedAt,
	"p." + schema.ContentVehiclePost.CreatedAt,
	"p." + schema.ContentVehiclePost.UpdatedAt,
}, ", ")

var postTagsSubquery = fmt.Sprintf(`COALESCE((
	SELECT json_agg(json_build_object('id', t.%s, 'name', t.%s, 'slug', t.%s))
	FROM %s t
	JOIN %s pt ON t.%s = pt.%s
	WHERE pt.%s = p.%s
), '[]')`,
	schema.ContentVehicleTag.ID, schema.ContentVehicleTag.Name, schema.ContentVehicleTag.Slug,
	schema.ContentVehicleTag.Table, schema.ContentVehiclePostTag.Table,
	schema.ContentVehicleTag.ID, schema.ContentVehiclePostTag.TagID,
	schema.ContentVehiclePostTag.PostID, schema.ContentVehiclePost.ID,
)

func scanPost(row pgx.Row) (*Post, error) {
	p := &Post{}
	var tagsJSON []byte

	err := row.Scan(
		&p.ID, &p.VehicleID, &p.Slug, &p.Title, &p.Excerpt, &p.Content,
		&p.HeroImage, &p.Published, &p.Featured, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt, &tagsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal post tags: %w", err)
	}
	if p.Tags == nil {
		p.Tags = []Tag{}
	}
	return p, nil
}

func (repository *PostgresRepository) ListPosts(ctx context.Context, vehicleID string, f PostFilter, limit, offset int) ([]*Post, int, error) {
	where := []string{fmt.Sprintf("p.%s = $1", schema.ContentVehiclePost.VehicleID)}
	args := []any{vehicleID}

	if !f.All {
		where = append(where, fmt.Sprintf("p.%s = TRUE", schema.ContentVehiclePost.Published))
	}
	if f.Published != nil {
		args = append(args, *f.Published)
		where = append(where, fmt.Sprintf("p.%s = $%d", schema.ContentVehiclePost.Published, len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		where = append(where, fmt.Sprintf("p.%s = $%d", schema.ContentVehiclePost.Featured, len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf("SELECT count(*) FROM %s p WHERE %s", schema.ContentVehiclePost.Table, whereClause)
	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_vehicle_posts")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s AS tags
		FROM %s p
		WHERE %s
		ORDER BY p.%s DESC, p.%s DESC
		LIMIT $%d OFFSET $%d`,
		postColumns, postTagsSubquery,
		schema.ContentVehiclePost.Table,
		whereClause,
		schema.ContentVehiclePost.Featured, schema.ContentVehiclePost.CreatedAt,
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_vehicle_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_vehicle_post")
		}
		posts = append(posts, p)
	}
	return posts, total, nil
}

func (repository *PostgresRepository) GetPost(ctx context.Context, vehicleID, postSlug string) (*Post, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s AS tags
		FROM %s p
		WHERE p.%s = $1 AND p.%s = $2`,
		postColumns, postTagsSubquery,
		schema.ContentVehiclePost.Table,
		schema.ContentVehiclePost.VehicleID, schema.ContentVehiclePost.Slug,
	)

	p, err := scanPost(repository.db.QueryRow(ctx, query, vehicleID, postSlug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_vehicle_post")
	}
	return p, nil
}

func (repository *PostgresRepository) CreatePost(ctx context.Context, p *Post) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin create transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s`,
		schema.ContentVehiclePost.Table,
		schema.ContentVehiclePost.ID, schema.ContentVehiclePost.VehicleID, schema.ContentVehiclePost.Slug,
		schema.ContentVehiclePost.Title, schema.ContentVehiclePost.Excerpt, schema.ContentVehiclePost.Content,
		schema.ContentVehiclePost.HeroImage, schema.ContentVehiclePost.Published,
		schema.ContentVehiclePost.Featured, schema.ContentVehiclePost.PublishedAt,
		schema.ContentVehiclePost.CreatedAt, schema.ContentVehiclePost.UpdatedAt,
		schema.ContentVehiclePost.CreatedAt, schema.ContentVehiclePost.UpdatedAt,
	)
	err = transaction.QueryRow(ctx, query,
		p.ID, p.VehicleID, p.Slug, p.Title, p.Excerpt, p.Content,
		p.HeroImage, p.Published, p.Featured, p.PublishedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		// Raw unique violations surface to the service so it can retry
		// with the next slug suffix.
		if dberr.IsUniqueViolation(err) {
			return err
		}
		return dberr.Wrap(err, "create_vehicle_post")
	}

	if err := repository.replacePostTags(ctx, transaction, p); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) UpdatePost(ctx context.Context, p *Post) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin update transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentVehiclePost.Table,
		schema.ContentVehiclePost.Title, schema.ContentVehiclePost.Excerpt, schema.ContentVehiclePost.Content,
		schema.ContentVehiclePost.HeroImage, schema.ContentVehiclePost.Published,
		schema.ContentVehiclePost.Featured, schema.ContentVehiclePost.PublishedAt,
		schema.ContentVehiclePost.UpdatedAt,
		schema.ContentVehiclePost.ID,
		schema.ContentVehiclePost.UpdatedAt,
	)
	err = transaction.QueryRow(ctx, query,
		p.ID, p.Title, p.Excerpt, p.Content, p.HeroImage,
		p.Published, p.Featured, p.PublishedAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_vehicle_post")
	}

	if err := repository.replacePostTags(ctx, transaction, p); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) replacePostTags(ctx context.Context, transaction pgx.Tx, p *Post) error {
	clearQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ContentVehiclePostTag.Table, schema.ContentVehiclePostTag.PostID)
	if _, err := transaction.Exec(ctx, clearQuery, p.ID); err != nil {
		return fmt.Errorf("postgres: failed to clear post tags: %w", err)
	}

	if len(p.Tags) == 0 {
		return nil
	}

	upsertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s`,
		schema.ContentVehicleTag.Table, schema.ContentVehicleTag.Name, schema.ContentVehicleTag.Slug,
		schema.ContentVehicleTag.Name, schema.ContentVehicleTag.Name, schema.ContentVehicleTag.Name,
		schema.ContentVehicleTag.ID,
	)
	connectQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ContentVehiclePostTag.Table, schema.ContentVehiclePostTag.PostID, schema.ContentVehiclePostTag.TagID)

	for i := range p.Tags {
		if err := transaction.QueryRow(ctx, upsertQuery, p.Tags[i].Name, p.Tags[i].Slug).Scan(&p.Tags[i].ID); err != nil {
			return fmt.Errorf("postgres: failed to upsert vehicle tag %q: %w", p.Tags[i].Name, err)
		}
		if _, err := transaction.Exec(ctx, connectQuery, p.ID, p.Tags[i].ID); err != nil {
			return fmt.Errorf("postgres: failed to connect vehicle tag %q: %w", p.Tags[i].Name, err)
		}
	}
	return nil
}

func (repository *PostgresRepository) DeletePost(ctx context.Context, vehicleID, postSlug string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.ContentVehiclePost.Table,
		schema.ContentVehiclePost.VehicleID, schema.ContentVehiclePost.Slug)

	cmd, err := repository.db.Exec(ctx, query, vehicleID, postSlug)
	if err != nil {
		return dberr.Wrap(err, "delete_vehicle_post")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListTags(ctx context.Context) ([]Tag, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s ORDER BY %s ASC",
		schema.ContentVehicleTag.ID, schema.ContentVehicleTag.Name, schema.ContentVehicleTag.Slug,
		schema.ContentVehicleTag.Table, schema.ContentVehicleTag.Name)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_vehicle_tags")
	}
	defer rows.Close()

	tags := make([]Tag, 0)
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_vehicle_tag")
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
