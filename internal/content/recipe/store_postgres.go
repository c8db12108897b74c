// Copyright (c) 2026 Porchlight. All rights reserved.

package recipe

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

// recipeColumns is the SELECT column list for the parent row, aliased "r".
var recipeColumns = strings.Join([]string{
	"r." + schema.ContentRecipe.ID,
	"r." + schema.ContentRecipe.Slug,
	"r." + schema.ContentRecipe.Title,
	"r." + schema.ContentRecipe.Description,
	"r." + schema.ContentRecipe.Category,
	"r." + schema.ContentRecipe.Cuisine,
	"r." + schema.ContentRecipe.PrepTime,
	"r." + schema.ContentRecipe.CookTime,
	"r." + schema.ContentRecipe.TotalTime,
	"r." + schema.ContentRecipe.Servings,
	"r." + schema.ContentRecipe.Difficulty,
	"r." + schema.ContentRecipe.Featured,
	"r." + schema.ContentRecipe.Published,
	"r." + schema.ContentRecipe.HeroImage,
	"r." + schema.ContentRecipe.PublishedAt,
	"r." + schema.ContentRecipe.CreatedAt,
	"r." + schema.ContentRecipe.UpdatedAt,
}, ", ")

// tagsSubquery aggregates the connected tags into a JSON array.
var tagsSubquery = fmt.Sprintf(`COALESCE((
	SELECT json_agg(json_build_object('id', t.%s, 'name', t.%s, 'slug', t.%s))
	FROM %s t
	JOIN %s rt ON t.%s = rt.%s
	WHERE rt.%s = r.%s
), '[]')`,
	schema.ContentTag.ID, schema.ContentTag.Name, schema.ContentTag.Slug,
	schema.ContentTag.Table, schema.ContentRecipeTag.Table,
	schema.ContentTag.ID, schema.ContentRecipeTag.TagID,
	schema.ContentRecipeTag.RecipeID, schema.ContentRecipe.ID,
)

func scanRecipe(row pgx.Row) (*Recipe, error) {
	r := &Recipe{}
	var tagsJSON []byte

	err := row.Scan(
		&r.ID, &r.Slug, &r.Title, &r.Description, &r.Category, &r.Cuisine,
		&r.PrepTime, &r.CookTime, &r.TotalTime, &r.Servings, &r.Difficulty,
		&r.Featured, &r.Published, &r.HeroImage, &r.PublishedAt,
		&r.CreatedAt, &r.UpdatedAt, &tagsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &r.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal recipe tags: %w", err)
	}
	if r.Tags == nil {
		r.Tags = []Tag{}
	}
	return r, nil
}

func (repository *PostgresRepository) List(ctx context.Context, f Filter, limit, offset int) ([]*Recipe, int, error) {
	where := []string{"TRUE"}
	args := []any{}

	if !f.All {
		where = append(where, fmt.Sprintf("r.%s = TRUE", schema.ContentRecipe.Published))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("r.%s = $%d", schema.ContentRecipe.Category, len(args)))
	}
	if f.Cuisine != "" {
		args = append(args, f.Cuisine)
		where = append(where, fmt.Sprintf("r.%s = $%d", schema.ContentRecipe.Cuisine, len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		where = append(where, fmt.Sprintf("r.%s = $%d", schema.ContentRecipe.Featured, len(args)))
	}
	if f.Published != nil {
		args = append(args, *f.Published)
		where = append(where, fmt.Sprintf("r.%s = $%d", schema.ContentRecipe.Published, len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf("SELECT count(*) FROM %s r WHERE %s", schema.ContentRecipe.Table, whereClause)
	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_recipes")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s AS tags
		FROM %s r
		WHERE %s
		ORDER BY r.%s DESC, r.%s DESC
		LIMIT $%d OFFSET $%d`,
		recipeColumns, tagsSubquery,
		schema.ContentRecipe.Table,
		whereClause,
		schema.ContentRecipe.Featured, schema.ContentRecipe.CreatedAt,
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_recipes")
	}
	defer rows.Close()

	recipes := make([]*Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_recipe")
		}
		recipes = append(recipes, r)
	}

	return recipes, total, nil
}

func (repository *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s AS tags
		FROM %s r
		WHERE r.%s = $1`,
		recipeColumns, tagsSubquery,
		schema.ContentRecipe.Table,
		schema.ContentRecipe.Slug,
	)

	r, err := scanRecipe(repository.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_recipe")
	}

	if err := repository.loadChildren(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// loadChildren hydrates the ordered child collections and nutrition block.
func (repository *PostgresRepository) loadChildren(ctx context.Context, r *Recipe) error {
	ingredientQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.ContentIngredient.Amount, schema.ContentIngredient.Unit, schema.ContentIngredient.Item,
		schema.ContentIngredient.Notes, schema.ContentIngredient.GroupLabel, schema.ContentIngredient.SortOrder,
		schema.ContentIngredient.Table, schema.ContentIngredient.RecipeID, schema.ContentIngredient.SortOrder,
	)
	rows, err := repository.db.Query(ctx, ingredientQuery, r.ID)
	if err != nil {
		return dberr.Wrap(err, "list_ingredients")
	}
	defer rows.Close()

	r.Ingredients = make([]Ingredient, 0)
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.Amount, &ing.Unit, &ing.Item, &ing.Notes, &ing.Group, &ing.Order); err != nil {
			return dberr.Wrap(err, "scan_ingredient")
		}
		r.Ingredients = append(r.Ingredients, ing)
	}
	rows.Close()

	instructionQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.ContentInstruction.Step, schema.ContentInstruction.Title,
		schema.ContentInstruction.Description, schema.ContentInstruction.TimeHint,
		schema.ContentInstruction.Table, schema.ContentInstruction.RecipeID, schema.ContentInstruction.Step,
	)
	rows, err = repository.db.Query(ctx, instructionQuery, r.ID)
	if err != nil {
		return dberr.Wrap(err, "list_instructions")
	}
	defer rows.Close()

	r.Instructions = make([]Instruction, 0)
	for rows.Next() {
		var ins Instruction
		if err := rows.Scan(&ins.Step, &ins.Title, &ins.Description, &ins.Time); err != nil {
			return dberr.Wrap(err, "scan_instruction")
		}
		r.Instructions = append(r.Instructions, ins)
	}
	rows.Close()

	tipQuery := fmt.Sprintf(`
		SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.ContentTip.Content, schema.ContentTip.SortOrder,
		schema.ContentTip.Table, schema.ContentTip.RecipeID, schema.ContentTip.SortOrder,
	)
	rows, err = repository.db.Query(ctx, tipQuery, r.ID)
	if err != nil {
		return dberr.Wrap(err, "list_tips")
	}
	defer rows.Close()

	r.Tips = make([]Tip, 0)
	for rows.Next() {
		var tip Tip
		if err := rows.Scan(&tip.Content, &tip.Order); err != nil {
			return dberr.Wrap(err, "scan_tip")
		}
		r.Tips = append(r.Tips, tip)
	}
	rows.Close()

	nutritionQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.ContentNutrition.ServingSize, schema.ContentNutrition.Calories,
		schema.ContentNutrition.Protein, schema.ContentNutrition.Carbohydrates,
		schema.ContentNutrition.Fat, schema.ContentNutrition.Fiber,
		schema.ContentNutrition.Sugar, schema.ContentNutrition.Sodium,
		schema.ContentNutrition.Table, schema.ContentNutrition.RecipeID,
	)
	nutrition := &Nutrition{}
	err = repository.db.QueryRow(ctx, nutritionQuery, r.ID).Scan(
		&nutrition.ServingSize, &nutrition.Calories, &nutrition.Protein,
		&nutrition.Carbohydrates, &nutrition.Fat, &nutrition.Fiber,
		&nutrition.Sugar, &nutrition.Sodium,
	)
	switch {
	case err == nil:
		r.Nutrition = nutrition
	case err == pgx.ErrNoRows:
		// Nutrition is optional.
	default:
		return dberr.Wrap(err, "get_nutrition")
	}

	return nil
}

func (repository *PostgresRepository) Create(ctx context.Context, r *Recipe) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin create transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING %s, %s`,
		schema.ContentRecipe.Table,
		schema.ContentRecipe.ID, schema.ContentRecipe.Slug, schema.ContentRecipe.Title,
		schema.ContentRecipe.Description, schema.ContentRecipe.Category, schema.ContentRecipe.Cuisine,
		schema.ContentRecipe.PrepTime, schema.ContentRecipe.CookTime, schema.ContentRecipe.TotalTime,
		schema.ContentRecipe.Servings, schema.ContentRecipe.Difficulty, schema.ContentRecipe.Featured,
		schema.ContentRecipe.Published, schema.ContentRecipe.HeroImage, schema.ContentRecipe.PublishedAt,
		schema.ContentRecipe.CreatedAt, schema.ContentRecipe.UpdatedAt,
		schema.ContentRecipe.CreatedAt, schema.ContentRecipe.UpdatedAt,
	)

	err = transaction.QueryRow(ctx, query,
		r.ID, r.Slug, r.Title, r.Description, r.Category, r.Cuisine,
		r.PrepTime, r.CookTime, r.TotalTime, r.Servings, r.Difficulty,
		r.Featured, r.Published, r.HeroImage, r.PublishedAt,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_recipe")
	}

	if err := repository.writeChildren(ctx, transaction, r); err != nil {
		return err
	}
	if err := repository.replaceTags(ctx, transaction, r); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, r *Recipe) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin update transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.ContentRecipe.Table,
		schema.ContentRecipe.Title, schema.ContentRecipe.Description, schema.ContentRecipe.Category,
		schema.ContentRecipe.Cuisine, schema.ContentRecipe.PrepTime, schema.ContentRecipe.CookTime,
		schema.ContentRecipe.TotalTime, schema.ContentRecipe.Servings, schema.ContentRecipe.Difficulty,
		schema.ContentRecipe.Featured, schema.ContentRecipe.Published, schema.ContentRecipe.HeroImage,
		schema.ContentRecipe.PublishedAt, schema.ContentRecipe.UpdatedAt,
		schema.ContentRecipe.ID,
		schema.ContentRecipe.UpdatedAt,
	)

	err = transaction.QueryRow(ctx, query,
		r.ID, r.Title, r.Description, r.Category, r.Cuisine,
		r.PrepTime, r.CookTime, r.TotalTime, r.Servings, r.Difficulty,
		r.Featured, r.Published, r.HeroImage, r.PublishedAt,
	).Scan(&r.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_recipe")
	}

	// Full-replace semantics: wipe the child rows and recreate from the
	// arrays carried on r.
	if err := repository.deleteChildren(ctx, transaction, r.ID); err != nil {
		return err
	}
	if err := repository.writeChildren(ctx, transaction, r); err != nil {
		return err
	}
	if err := repository.replaceTags(ctx, transaction, r); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, slug string) error {
	// Child rows and tag connections cascade via foreign keys.
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ContentRecipe.Table, schema.ContentRecipe.Slug)

	cmd, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_recipe")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// deleteChildren removes all child rows owned by the recipe.
func (repository *PostgresRepository) deleteChildren(ctx context.Context, transaction pgx.Tx, recipeID string) error {
	children := []struct{ table, fk string }{
		{schema.ContentIngredient.Table, schema.ContentIngredient.RecipeID},
		{schema.ContentInstruction.Table, schema.ContentInstruction.RecipeID},
		{schema.ContentTip.Table, schema.ContentTip.RecipeID},
		{schema.ContentNutrition.Table, schema.ContentNutrition.RecipeID},
	}

	for _, child := range children {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", child.table, child.fk)
		if _, err := transaction.Exec(ctx, query, recipeID); err != nil {
			return fmt.Errorf("postgres: failed to clear %s: %w", child.table, err)
		}
	}
	return nil
}

// writeChildren inserts the child collections carried on r in one batch.
func (repository *PostgresRepository) writeChildren(ctx context.Context, transaction pgx.Tx, r *Recipe) error {
	batch := &pgx.Batch{}

	ingredientQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.ContentIngredient.Table,
		schema.ContentIngredient.RecipeID, schema.ContentIngredient.Amount, schema.ContentIngredient.Unit,
		schema.ContentIngredient.Item, schema.ContentIngredient.Notes, schema.ContentIngredient.GroupLabel,
		schema.ContentIngredient.SortOrder,
	)
	for _, ing := range r.Ingredients {
		batch.Queue(ingredientQuery, r.ID, ing.Amount, ing.Unit, ing.Item, ing.Notes, ing.Group, ing.Order)
	}

	instructionQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.ContentInstruction.Table,
		schema.ContentInstruction.RecipeID, schema.ContentInstruction.Step,
		schema.ContentInstruction.Title, schema.ContentInstruction.Description, schema.ContentInstruction.TimeHint,
	)
	for _, ins := range r.Instructions {
		batch.Queue(instructionQuery, r.ID, ins.Step, ins.Title, ins.Description, ins.Time)
	}

	tipQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.ContentTip.Table,
		schema.ContentTip.RecipeID, schema.ContentTip.Content, schema.ContentTip.SortOrder,
	)
	for _, tip := range r.Tips {
		batch.Queue(tipQuery, r.ID, tip.Content, tip.Order)
	}

	if r.Nutrition != nil {
		nutritionQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			schema.ContentNutrition.Table,
			schema.ContentNutrition.RecipeID, schema.ContentNutrition.ServingSize,
			schema.ContentNutrition.Calories, schema.ContentNutrition.Protein,
			schema.ContentNutrition.Carbohydrates, schema.ContentNutrition.Fat,
			schema.ContentNutrition.Fiber, schema.ContentNutrition.Sugar, schema.ContentNutrition.Sodium,
		)
		n := r.Nutrition
		batch.Queue(nutritionQuery, r.ID, n.ServingSize, n.Calories, n.Protein,
			n.Carbohydrates, n.Fat, n.Fiber, n.Sugar, n.Sodium)
	}

	if batch.Len() == 0 {
		return nil
	}

	results := transaction.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return fmt.Errorf("postgres: failed to write recipe children: %w", err)
	}
	return nil
}

// replaceTags upserts each tag by name and rewrites the junction rows.
//
// Tags carried on r must already have Name and Slug populated; IDs are
// resolved here. Existing tags are reused, never duplicated.
func (repository *PostgresRepository) replaceTags(ctx context.Context, transaction pgx.Tx, r *Recipe) error {
	clearQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ContentRecipeTag.Table, schema.ContentRecipeTag.RecipeID)
	if _, err := transaction.Exec(ctx, clearQuery, r.ID); err != nil {
		return fmt.Errorf("postgres: failed to clear recipe tags: %w", err)
	}

	if len(r.Tags) == 0 {
		return nil
	}

	// The no-op DO UPDATE makes RETURNING yield the id on both paths.
	upsertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s`,
		schema.ContentTag.Table, schema.ContentTag.Name, schema.ContentTag.Slug,
		schema.ContentTag.Name, schema.ContentTag.Name, schema.ContentTag.Name,
		schema.ContentTag.ID,
	)
	connectQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ContentRecipeTag.Table, schema.ContentRecipeTag.RecipeID, schema.ContentRecipeTag.TagID)

	for i := range r.Tags {
		if err := transaction.QueryRow(ctx, upsertQuery, r.Tags[i].Name, r.Tags[i].Slug).Scan(&r.Tags[i].ID); err != nil {
			return fmt.Errorf("postgres: failed to upsert tag %q: %w", r.Tags[i].Name, err)
		}
		if _, err := transaction.Exec(ctx, connectQuery, r.ID, r.Tags[i].ID); err != nil {
			return fmt.Errorf("postgres: failed to connect tag %q: %w", r.Tags[i].Name, err)
		}
	}
	return nil
}

// searchFields are the parent columns matched by text search.
var searchFields = []string{
	schema.ContentRecipe.Title,
	schema.ContentRecipe.Description,
	schema.ContentRecipe.Category,
	schema.ContentRecipe.Cuisine,
}

// escapeLikePattern neutralizes LIKE metacharacters so a term such as "100%"
// matches literally instead of acting as a wildcard.
func escapeLikePattern(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

// buildSearchWhere renders the AND-of-ORs search predicate: every term must
// match at least one searched field, including the related ingredient items
// and tag names. Returns the clause and its positional arguments.
func buildSearchWhere(terms []string) (string, []any) {
	clauses := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms))

	for _, term := range terms {
		args = append(args, "%"+escapeLikePattern(term)+"%")
		arg := len(args)

		ors := make([]string, 0, len(searchFields)+2)
		for _, field := range searchFields {
			ors = append(ors, fmt.Sprintf("r.%s ILIKE $%d", field, arg))
		}
		ors = append(ors, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s i WHERE i.%s = r.%s AND i.%s ILIKE $%d)",
			schema.ContentIngredient.Table, schema.ContentIngredient.RecipeID,
			schema.ContentRecipe.ID, schema.ContentIngredient.Item, arg,
		))
		ors = append(ors, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s t JOIN %s rt ON t.%s = rt.%s WHERE rt.%s = r.%s AND t.%s ILIKE $%d)",
			schema.ContentTag.Table, schema.ContentRecipeTag.Table,
			schema.ContentTag.ID, schema.ContentRecipeTag.TagID,
			schema.ContentRecipeTag.RecipeID, schema.ContentRecipe.ID,
			schema.ContentTag.Name, arg,
		))

		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), args
}

func (repository *PostgresRepository) Search(ctx context.Context, terms []string, limit int) ([]*Recipe, error) {
	if len(terms) == 0 {
		return []*Recipe{}, nil
	}

	whereClause, args := buildSearchWhere(terms)
	query := fmt.Sprintf(`
		SELECT %s, %s AS tags
		FROM %s r
		WHERE r.%s = TRUE AND %s
		ORDER BY r.%s DESC, r.%s DESC
		LIMIT $%d`,
		recipeColumns, tagsSubquery,
		schema.ContentRecipe.Table,
		schema.ContentRecipe.Published, whereClause,
		schema.ContentRecipe.Featured, schema.ContentRecipe.CreatedAt,
		len(args)+1,
	)
	args = append(args, limit)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_recipes")
	}
	defer rows.Close()

	recipes := make([]*Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_recipe_search")
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}
