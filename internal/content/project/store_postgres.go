// Copyright (c) 2026 Porchlight. All rights reserved.

package project

import (
	"context"
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

var projectColumns = strings.Join([]string{
	"p." + schema.ContentProject.ID,
	"p." + schema.ContentProject.Slug,
	"p." + schema.ContentProject.Title,
	"p." + schema.ContentProject.Description,
	"p." + schema.ContentProject.LongDescription,
	"p." + schema.ContentProject.Category,
	"p." + schema.ContentProject.Status,
	"p." + schema.ContentProject.Featured,
	"p." + schema.ContentProject.Published,
	"p." + schema.ContentProject.DemoURL,
	"p." + schema.ContentProject.GithubURL,
	"p." + schema.ContentProject.VideoURL,
	"p." + schema.ContentProject.SortOrder,
	"p." + schema.ContentProject.PublishedAt,
	"p." + schema.ContentProject.CreatedAt,
	"p." + schema.ContentProject.UpdatedAt,
}, ", ")

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Description, &p.LongDescription,
		&p.Category, &p.Status, &p.Featured, &p.Published,
		&p.DemoURL, &p.GithubURL, &p.VideoURL, &p.Order,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (repository *PostgresRepository) List(ctx context.Context, f Filter, limit, offset int) ([]*Project, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if !f.All {
		where = append(where, fmt.Sprintf("p.%s = TRUE", schema.ContentProject.Published))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("p.%s = $%d", schema.ContentProject.Category, len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("p.%s = $%d", schema.ContentProject.Status, len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		where = append(where, fmt.Sprintf("p.%s = $%d", schema.ContentProject.Featured, len(args)))
	}
	if f.Published != nil {
		args = append(args, *f.Published)
		where = append(where, fmt.Sprintf("p.%s = $%d", schema.ContentProject.Published, len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf("SELECT count(*) FROM %s p WHERE %s", schema.ContentProject.Table, whereClause)
	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_projects")
	}

	// Manual sort order first, then newest.
	query := fmt.Sprintf(`
		SELECT %s FROM %s p
		WHERE %s
		ORDER BY p.%s ASC, p.%s DESC
		LIMIT $%d OFFSET $%d`,
		projectColumns, schema.ContentProject.Table,
		whereClause,
		schema.ContentProject.SortOrder, schema.ContentProject.CreatedAt,
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_projects")
	}
	defer rows.Close()

	projects := make([]*Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_project")
		}
		projects = append(projects, p)
	}

	for _, p := range projects {
		if err := repository.loadChildren(ctx, p); err != nil {
			return nil, 0, err
		}
	}
	return projects, total, nil
}

func (repository *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	query := fmt.Sprintf("SELECT %s FROM %s p WHERE p.%s = $1",
		projectColumns, schema.ContentProject.Table, schema.ContentProject.Slug)

	p, err := scanProject(repository.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_project")
	}

	if err := repository.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (repository *PostgresRepository) loadChildren(ctx context.Context, p *Project) error {
	techQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.ContentTechnology.Name, schema.ContentTechnology.Icon,
		schema.ContentTechnology.Category, schema.ContentTechnology.SortOrder,
		schema.ContentTechnology.Table, schema.ContentTechnology.ProjectID, schema.ContentTechnology.SortOrder,
	)
	rows, err := repository.db.Query(ctx, techQuery, p.ID)
	if err != nil {
		return dberr.Wrap(err, "list_technologies")
	}
	defer rows.Close()

	p.Technologies = make([]Technology, 0)
	for rows.Next() {
		var tech Technology
		if err := rows.Scan(&tech.Name, &tech.Icon, &tech.Category, &tech.Order); err != nil {
			return dberr.Wrap(err, "scan_technology")
		}
		p.Technologies = append(p.Technologies, tech)
	}
	rows.Close()

	featureQuery := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.ContentFeature.Title, schema.ContentFeature.Description, schema.ContentFeature.SortOrder,
		schema.ContentFeature.Table, schema.ContentFeature.ProjectID, schema.ContentFeature.SortOrder,
	)
	rows, err = repository.db.Query(ctx, featureQuery, p.ID)
	if err != nil {
		return dberr.Wrap(err, "list_features")
	}
	defer rows.Close()

	p.Features = make([]Feature, 0)
	for rows.Next() {
		var feature Feature
		if err := rows.Scan(&feature.Title, &feature.Description, &feature.Order); err != nil {
			return dberr.Wrap(err, "scan_feature")
		}
		p.Features = append(p.Features, feature)
	}
	rows.Close()

	images, err := repository.listImages(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Images = images

	updates, err := repository.ListUpdates(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Updates = updates

	return nil
}

func (repository *PostgresRepository) listImages(ctx context.Context, projectID string) ([]Image, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.ContentProjectImage.URL, schema.ContentProjectImage.Alt,
		schema.ContentProjectImage.Caption, schema.ContentProjectImage.SortOrder,
		schema.ContentProjectImage.Table, schema.ContentProjectImage.ProjectID, schema.ContentProjectImage.SortOrder,
	)
	rows, err := repository.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_project_images")
	}
	defer rows.Close()

	images := make([]Image, 0)
	for rows.Next() {
		var image Image
		if err := rows.Scan(&image.URL, &image.Alt, &image.Caption, &image.Order); err != nil {
			return nil, dberr.Wrap(err, "scan_project_image")
		}
		images = append(images, image)
	}
	return images, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, p *Project) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin create transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING %s, %s`,
		schema.ContentProject.Table,
		schema.ContentProject.ID, schema.ContentProject.Slug, schema.ContentProject.Title,
		schema.ContentProject.Description, schema.ContentProject.LongDescription,
		schema.ContentProject.Category, schema.ContentProject.Status,
		schema.ContentProject.Featured, schema.ContentProject.Published,
		schema.ContentProject.DemoURL, schema.ContentProject.GithubURL, schema.ContentProject.VideoURL,
		schema.ContentProject.SortOrder, schema.ContentProject.PublishedAt,
		schema.ContentProject.CreatedAt, schema.ContentProject.UpdatedAt,
		schema.ContentProject.CreatedAt, schema.ContentProject.UpdatedAt,
	)
	err = transaction.QueryRow(ctx, query,
		p.ID, p.Slug, p.Title, p.Description, p.LongDescription,
		p.Category, p.Status, p.Featured, p.Published,
		p.DemoURL, p.GithubURL, p.VideoURL, p.Order, p.PublishedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_project")
	}

	if err := repository.writeChildren(ctx, transaction, p); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, p *Project) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin update transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentProject.Table,
		schema.ContentProject.Title, schema.ContentProject.Description, schema.ContentProject.LongDescription,
		schema.ContentProject.Category, schema.ContentProject.Status,
		schema.ContentProject.Featured, schema.ContentProject.Published,
		schema.ContentProject.DemoURL, schema.ContentProject.GithubURL, schema.ContentProject.VideoURL,
		schema.ContentProject.SortOrder, schema.ContentProject.PublishedAt,
		schema.ContentProject.UpdatedAt,
		schema.ContentProject.ID,
		schema.ContentProject.UpdatedAt,
	)
	err = transaction.QueryRow(ctx, query,
		p.ID, p.Title, p.Description, p.LongDescription,
		p.Category, p.Status, p.Featured, p.Published,
		p.DemoURL, p.GithubURL, p.VideoURL, p.Order, p.PublishedAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_project")
	}

	// Full-replace semantics for technologies, features and images.
	// Progress updates are managed through their own sub-resource and are
	// left untouched here.
	for _, child := range []struct{ table, fk string }{
		{schema.ContentTechnology.Table, schema.ContentTechnology.ProjectID},
		{schema.ContentFeature.Table, schema.ContentFeature.ProjectID},
		{schema.ContentProjectImage.Table, schema.ContentProjectImage.ProjectID},
	} {
		clearQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", child.table, child.fk)
		if _, err := transaction.Exec(ctx, clearQuery, p.ID); err != nil {
			return fmt.Errorf("postgres: failed to clear %s: %w", child.table, err)
		}
	}
	if err := repository.writeChildren(ctx, transaction, p); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) writeChildren(ctx context.Context, transaction pgx.Tx, p *Project) error {
	batch := &pgx.Batch{}

	techQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.ContentTechnology.Table,
		schema.ContentTechnology.ProjectID, schema.ContentTechnology.Name,
		schema.ContentTechnology.Icon, schema.ContentTechnology.Category, schema.ContentTechnology.SortOrder,
	)
	for _, tech := range p.Technologies {
		batch.Queue(techQuery, p.ID, tech.Name, tech.Icon, tech.Category, tech.Order)
	}

	featureQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.ContentFeature.Table,
		schema.ContentFeature.ProjectID, schema.ContentFeature.Title,
		schema.ContentFeature.Description, schema.ContentFeature.SortOrder,
	)
	for _, feature := range p.Features {
		batch.Queue(featureQuery, p.ID, feature.Title, feature.Description, feature.Order)
	}

	imageQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.ContentProjectImage.Table,
		schema.ContentProjectImage.ProjectID, schema.ContentProjectImage.URL,
		schema.ContentProjectImage.Alt, schema.ContentProjectImage.Caption, schema.ContentProjectImage.SortOrder,
	)
	for _, image := range p.Images {
		batch.Queue(imageQuery, p.ID, image.URL, image.Alt, image.Caption, image.Order)
	}

	if batch.Len() == 0 {
		return nil
	}

	results := transaction.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return fmt.Errorf("postgres: failed to write project children: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, slug string) error {
	// Technologies, features, images and updates cascade via foreign keys.
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ContentProject.Table, schema.ContentProject.Slug)

	cmd, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_project")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ReplaceImages(ctx context.Context, projectID string, images []Image) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin images transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	clearQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ContentProjectImage.Table, schema.ContentProjectImage.ProjectID)
	if _, err := transaction.Exec(ctx, clearQuery, projectID); err != nil {
		return fmt.Errorf("postgres: failed to clear project images: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.ContentProjectImage.Table,
		schema.ContentProjectImage.ProjectID, schema.ContentProjectImage.URL,
		schema.ContentProjectImage.Alt, schema.ContentProjectImage.Caption, schema.ContentProjectImage.SortOrder,
	)
	batch := &pgx.Batch{}
	for _, image := range images {
		batch.Queue(insertQuery, projectID, image.URL, image.Alt, image.Caption, image.Order)
	}
	if batch.Len() > 0 {
		results := transaction.SendBatch(ctx, batch)
		if err := results.Close(); err != nil {
			return fmt.Errorf("postgres: failed to write project images: %w", err)
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit images transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) ListUpdates(ctx context.Context, projectID string) ([]Update, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		schema.ContentProjectUpdate.ID, schema.ContentProjectUpdate.Title,
		schema.ContentProjectUpdate.Content, schema.ContentProjectUpdate.Published,
		schema.ContentProjectUpdate.CreatedAt,
		schema.ContentProjectUpdate.Table, schema.ContentProjectUpdate.ProjectID,
		schema.ContentProjectUpdate.CreatedAt,
	)
	rows, err := repository.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_project_updates")
	}
	defer rows.Close()

	updates := make([]Update, 0)
	for rows.Next() {
		var update Update
		if err := rows.Scan(&update.ID, &update.Title, &update.Content, &update.Published, &update.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_project_update")
		}
		updates = append(updates, update)
	}
	return updates, nil
}

func (repository *PostgresRepository) CreateUpdate(ctx context.Context, projectID string, u *Update) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING %s`,
		schema.ContentProjectUpdate.Table,
		schema.ContentProjectUpdate.ID, schema.ContentProjectUpdate.ProjectID,
		schema.ContentProjectUpdate.Title, schema.ContentProjectUpdate.Content,
		schema.ContentProjectUpdate.Published,
		schema.ContentProjectUpdate.CreatedAt,
		schema.ContentProjectUpdate.CreatedAt,
	)
	err := repository.db.QueryRow(ctx, query, u.ID, projectID, u.Title, u.Content, u.Published).Scan(&u.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_project_update")
	}
	return nil
}

func (repository *PostgresRepository) DeleteUpdate(ctx context.Context, projectID, updateID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.ContentProjectUpdate.Table,
		schema.ContentProjectUpdate.ProjectID, schema.ContentProjectUpdate.ID)

	cmd, err := repository.db.Exec(ctx, query, projectID, updateID)
	if err != nil {
		return dberr.Wrap(err, "delete_project_update")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// projectSearchFields are the parent columns matched by text search.
var projectSearchFields = []string{
	schema.ContentProject.Title,
	schema.ContentProject.Description,
	schema.ContentProject.LongDescription,
	schema.ContentProject.Category,
}

// escapeLikePattern neutralizes LIKE metacharacters so a term such as "100%"
// matches literally instead of acting as a wildcard.
func escapeLikePattern(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

// buildSearchWhere renders the AND-of-ORs search predicate across the parent
// columns, technology names, and feature titles/descriptions.
func buildSearchWhere(terms []string) (string, []any) {
	clauses := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms))

	for _, term := range terms {
		args = append(args, "%"+escapeLikePattern(term)+"%")
		arg := len(args)

		ors := make([]string, 0, len(projectSearchFields)+2)
		for _, field := range projectSearchFields {
			ors = append(ors, fmt.Sprintf("p.%s ILIKE $%d", field, arg))
		}
		ors = append(ors, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s t WHERE t.%s = p.%s AND t.%s ILIKE $%d)",
			schema.ContentTechnology.Table, schema.ContentTechnology.ProjectID,
			schema.ContentProject.ID, schema.ContentTechnology.Name, arg,
		))
		ors = append(ors, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s f WHERE f.%s = p.%s AND (f.%s ILIKE $%d OR f.%s ILIKE $%d))",
			schema.ContentFeature.Table, schema.ContentFeature.ProjectID,
			schema.ContentProject.ID, schema.ContentFeature.Title, arg,
			schema.ContentFeature.Description, arg,
		))

		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), args
}

func (repository *PostgresRepository) Search(ctx context.Context, terms []string, limit int) ([]*Project, error) {
	if len(terms) == 0 {
		return []*Project{}, nil
	}

	whereClause, args := buildSearchWhere(terms)
	query := fmt.Sprintf(`
		SELECT %s FROM %s p
		WHERE p.%s = TRUE AND %s
		ORDER BY p.%s DESC, p.%s DESC
		LIMIT $%d`,
		projectColumns, schema.ContentProject.Table,
		schema.ContentProject.Published, whereClause,
		schema.ContentProject.Featured, schema.ContentProject.CreatedAt,
		len(args)+1,
	)
	args = append(args, limit)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_projects")
	}
	defer rows.Close()

	projects := make([]*Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_project_search")
		}
		projects = append(projects, p)
	}
	return projects, nil
}
