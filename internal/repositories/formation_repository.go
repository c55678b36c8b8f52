package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mentorat/authoring/internal/authoring"
	"github.com/mentorat/authoring/internal/models"
)

// newID assigns ids to modules and chapters created directly in the store
var newID = func() string { return uuid.New().String() }

type formationRepository struct {
	db *sql.DB
}

// NewFormationRepository creates a new formation repository
func NewFormationRepository(db *sql.DB) *formationRepository {
	return &formationRepository{
		db: db,
	}
}

// LoadFormation retrieves a formation with its modules, chapters and blocks
func (r *formationRepository) LoadFormation(ctx context.Context, id string) (*models.Formation, error) {
	query := `
		SELECT id, title, description, price, estimated_duration, level, status
		FROM formations
		WHERE id = ?
		LIMIT 1
	`

	var f models.Formation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID,
		&f.Title,
		&f.Description,
		&f.Price,
		&f.DurationMinutes,
		&f.Level,
		&f.Status,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: formation %q", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get formation by id: %w", err)
	}

	f.Modules = []models.Module{}
	moduleIndex, err := r.loadModules(ctx, &f)
	if err != nil {
		return nil, err
	}
	chapterIndex, err := r.loadChapters(ctx, &f, moduleIndex)
	if err != nil {
		return nil, err
	}
	if err := r.loadBlocks(ctx, &f, chapterIndex); err != nil {
		return nil, err
	}

	authoring.Normalize(&f)
	return &f, nil
}

func (r *formationRepository) loadModules(ctx context.Context, f *models.Formation) (map[string]int, error) {
	query := `
		SELECT id, title, description, module_order, estimated_duration
		FROM formation_modules
		WHERE formation_id = ?
		ORDER BY module_order
	`

	rows, err := r.db.QueryContext(ctx, query, f.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		module := models.Module{Chapters: []models.Chapter{}}
		if err := rows.Scan(&module.ID, &module.Title, &module.Description, &module.Order, &module.DurationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		index[module.ID] = len(f.Modules)
		f.Modules = append(f.Modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return index, nil
}

type chapterRef struct {
	module  int
	chapter int
}

func (r *formationRepository) loadChapters(ctx context.Context, f *models.Formation, moduleIndex map[string]int) (map[string]chapterRef, error) {
	query := `
		SELECT c.id, c.module_id, c.title, c.description, c.chapter_order, c.estimated_duration, c.required
		FROM formation_chapters c
		JOIN formation_modules m ON m.id = c.module_id
		WHERE m.formation_id = ?
		ORDER BY c.chapter_order
	`

	rows, err := r.db.QueryContext(ctx, query, f.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	index := make(map[string]chapterRef)
	for rows.Next() {
		var moduleID string
		chapter := models.Chapter{Blocks: []models.ContentBlock{}}
		err := rows.Scan(
			&chapter.ID,
			&moduleID,
			&chapter.Title,
			&chapter.Description,
			&chapter.Order,
			&chapter.DurationMinutes,
			&chapter.Required,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		m, ok := moduleIndex[moduleID]
		if !ok {
			continue
		}
		index[chapter.ID] = chapterRef{module: m, chapter: len(f.Modules[m].Chapters)}
		f.Modules[m].Chapters = append(f.Modules[m].Chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return index, nil
}

func (r *formationRepository) loadBlocks(ctx context.Context, f *models.Formation, chapterIndex map[string]chapterRef) error {
	query := `
		SELECT b.id, b.chapter_id, b.block_type, b.block_order, b.title, b.required, b.block_data
		FROM content_blocks b
		JOIN formation_chapters c ON c.id = b.chapter_id
		JOIN formation_modules m ON m.id = c.module_id
		WHERE m.formation_id = ?
		ORDER BY b.block_order
	`

	rows, err := r.db.QueryContext(ctx, query, f.ID)
	if err != nil {
		return fmt.Errorf("failed to query content blocks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var chapterID, blockDataJSON string
		var block models.ContentBlock
		err := rows.Scan(
			&block.ID,
			&chapterID,
			&block.Type,
			&block.Order,
			&block.Title,
			&block.Required,
			&blockDataJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to scan content block: %w", err)
		}
		block.Data, err = models.DecodeBlockData(block.Type, json.RawMessage(blockDataJSON))
		if err != nil {
			return fmt.Errorf("failed to decode content block %s: %w", block.ID, err)
		}
		ref, ok := chapterIndex[chapterID]
		if !ok {
			continue
		}
		chapter := &f.Modules[ref.module].Chapters[ref.chapter]
		chapter.Blocks = append(chapter.Blocks, block)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}
	return nil
}

// SaveFormation overwrites the stored formation with the given snapshot
//
// The whole tree is rewritten in one transaction. The publication status is owned by
// PublishFormation and is not changed by a save; the returned formation carries the stored one.
func (r *formationRepository) SaveFormation(ctx context.Context, id string, formation *models.Formation) (*models.Formation, error) {
	snapshot, err := prepareSnapshot(id, formation)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeSnapshot(ctx, tx, snapshot); err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx, `SELECT status FROM formations WHERE id = ?`, id).Scan(&snapshot.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to read formation status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return snapshot, nil
}

// AutosaveFormation stores the snapshot like SaveFormation without reading anything back
func (r *formationRepository) AutosaveFormation(ctx context.Context, id string, formation *models.Formation) error {
	snapshot, err := prepareSnapshot(id, formation)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeSnapshot(ctx, tx, snapshot); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func prepareSnapshot(id string, formation *models.Formation) (*models.Formation, error) {
	if formation == nil {
		return nil, fmt.Errorf("formation is required")
	}
	snapshot := formation.Clone()
	snapshot.ID = id
	if snapshot.Status == "" {
		snapshot.Status = models.StatusDraft
	}
	if snapshot.Level == "" {
		snapshot.Level = models.LevelBeginner
	}
	if err := authoring.CheckInvariants(snapshot); err != nil {
		return nil, fmt.Errorf("refusing to store an inconsistent tree: %w", err)
	}
	return snapshot, nil
}

func writeSnapshot(ctx context.Context, tx *sql.Tx, f *models.Formation) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO formations (id, title, description, price, estimated_duration, level, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			title = VALUES(title),
			description = VALUES(description),
			price = VALUES(price),
			estimated_duration = VALUES(estimated_duration),
			level = VALUES(level)
	`, f.ID, f.Title, f.Description, f.Price, f.DurationMinutes, f.Level, f.Status)
	if err != nil {
		return fmt.Errorf("failed to upsert formation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM formation_modules WHERE formation_id = ?`, f.ID); err != nil {
		return fmt.Errorf("failed to delete modules: %w", err)
	}

	for _, module := range f.Modules {
		if err := insertModule(ctx, tx, f.ID, &module); err != nil {
			return err
		}
		for _, chapter := range module.Chapters {
			if err := insertChapter(ctx, tx, module.ID, &chapter); err != nil {
				return err
			}
			for _, block := range chapter.Blocks {
				if err := insertBlock(ctx, tx, chapter.ID, &block); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func insertModule(ctx context.Context, tx *sql.Tx, formationID string, module *models.Module) error {
	query := `
		INSERT INTO formation_modules (id, formation_id, title, description, module_order, estimated_duration)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		module.ID,
		formationID,
		module.Title,
		module.Description,
		module.Order,
		module.DurationMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert module: %w", err)
	}
	return nil
}

func insertChapter(ctx context.Context, tx *sql.Tx, moduleID string, chapter *models.Chapter) error {
	query := `
		INSERT INTO formation_chapters (id, module_id, title, description, chapter_order, estimated_duration, required)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		chapter.ID,
		moduleID,
		chapter.Title,
		chapter.Description,
		chapter.Order,
		chapter.DurationMinutes,
		chapter.Required,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chapter: %w", err)
	}
	return nil
}

func insertBlock(ctx context.Context, tx *sql.Tx, chapterID string, block *models.ContentBlock) error {
	blockDataJSON, err := json.Marshal(block.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal block data: %w", err)
	}

	query := `
		INSERT INTO content_blocks (id, chapter_id, block_type, block_order, title, required, block_data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		block.ID,
		chapterID,
		block.Type,
		block.Order,
		block.Title,
		block.Required,
		string(blockDataJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert content block: %w", err)
	}
	return nil
}

// PublishFormation marks a formation as published
func (r *formationRepository) PublishFormation(ctx context.Context, id string) error {
	query := `UPDATE formations SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, models.StatusPublished, id)
	if err != nil {
		return fmt.Errorf("failed to publish formation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: formation %q", models.ErrNotFound, id)
	}
	return nil
}

// CreateModule appends a module at the end of a stored formation
func (r *formationRepository) CreateModule(ctx context.Context, formationID string, seed *models.ModuleSeed) (*models.Module, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM formations WHERE id = ?)`, formationID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check formation existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: formation %q", models.ErrNotFound, formationID)
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM formation_modules WHERE formation_id = ?`, formationID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count modules: %w", err)
	}

	module := &models.Module{
		ID:              newID(),
		Title:           seed.Title,
		Description:     seed.Description,
		Order:           count,
		DurationMinutes: seed.DurationMinutes,
		Chapters:        []models.Chapter{},
	}
	if err := insertModule(ctx, tx, formationID, module); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return module, nil
}

// CreateChapter appends a chapter at the end of a stored module of the formation
func (r *formationRepository) CreateChapter(ctx context.Context, formationID, moduleID string, seed *models.ChapterSeed) (*models.Chapter, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM formation_modules WHERE id = ? AND formation_id = ?)`
	err = tx.QueryRowContext(ctx, query, moduleID, formationID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check module existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: module %q", models.ErrNotFound, moduleID)
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM formation_chapters WHERE module_id = ?`, moduleID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count chapters: %w", err)
	}

	chapter := &models.Chapter{
		ID:              newID(),
		Title:           seed.Title,
		Description:     seed.Description,
		Order:           count,
		DurationMinutes: seed.DurationMinutes,
		Required:        seed.Required,
		Blocks:          []models.ContentBlock{},
	}
	if err := insertChapter(ctx, tx, moduleID, chapter); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return chapter, nil
}

// UpdateChapterContent replaces every block of a stored chapter of the formation
func (r *formationRepository) UpdateChapterContent(ctx context.Context, formationID, chapterID string, blocks []models.ContentBlock) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM formation_chapters c
			JOIN formation_modules m ON m.id = c.module_id
			WHERE c.id = ? AND m.formation_id = ?
		)
	`
	err = tx.QueryRowContext(ctx, query, chapterID, formationID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check chapter existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: chapter %q", models.ErrNotFound, chapterID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM content_blocks WHERE chapter_id = ?`, chapterID); err != nil {
		return fmt.Errorf("failed to delete content blocks: %w", err)
	}
	for i := range blocks {
		if err := insertBlock(ctx, tx, chapterID, &blocks[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteChapter deletes a stored chapter of the formation and closes the gap in its module's order
func (r *formationRepository) DeleteChapter(ctx context.Context, formationID, chapterID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var moduleID string
	var order int
	lookup := `
		SELECT c.module_id, c.chapter_order
		FROM formation_chapters c
		JOIN formation_modules m ON m.id = c.module_id
		WHERE c.id = ? AND m.formation_id = ?
	`
	err = tx.QueryRowContext(ctx, lookup, chapterID, formationID).Scan(&moduleID, &order)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: chapter %q", models.ErrNotFound, chapterID)
	}
	if err != nil {
		return fmt.Errorf("failed to get chapter by id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM formation_chapters WHERE id = ?`, chapterID); err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}

	query := `
		UPDATE formation_chapters
		SET chapter_order = chapter_order - 1
		WHERE module_id = ? AND chapter_order > ?
	`
	if _, err := tx.ExecContext(ctx, query, moduleID, order); err != nil {
		return fmt.Errorf("failed to decrement chapter order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
