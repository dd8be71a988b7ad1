package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// whereClause collects AND-ed conditions. Each condition carries one "$%d"
// placeholder that is filled with the position of its argument.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type listQuery struct {
	selectSQL string // SELECT ... FROM ... [JOIN ...]
	countSQL  string // SELECT COUNT(*) FROM ...
	orderBy   string
}

// listPage runs the count and the page query with the same filter, so the
// total reflects the filter but not the pagination.
func listPage[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	q listQuery,
	where *whereClause,
	page domain.PageRequest,
	scan func(rowScanner) (*T, error),
) ([]*T, int, error) {
	var total int
	if err := pool.QueryRow(ctx, q.countSQL+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	page = page.Normalize()
	items := make([]*T, 0, min(page.Limit, total))
	if total == 0 || page.Offset() >= total {
		return items, total, nil
	}

	args := append(slices.Clone(where.args), page.Limit, page.Offset())
	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		q.selectSQL, where.String(), q.orderBy, len(args)-1, len(args))

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list rows: %w", err)
	}
	return items, total, nil
}

// deleteByID removes one row from table, which is always a package constant.
func deleteByID(ctx context.Context, pool *pgxpool.Pool, table string, id int64) error {
	tag, err := pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, deleteError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// updateLocked locks the row with FOR UPDATE, reads it, lets apply change it
// and writes it back in one transaction. Concurrent patches of the same row
// are serialised, so each one applies on top of the previous result.
func updateLocked[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	table string,
	id int64,
	get func(context.Context, querier, int64) (*T, error),
	apply func(*T),
	write func(context.Context, querier, int64, *T) (*T, error),
) (updated *T, err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var locked int64
	err = tx.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", table, err)
	}

	current, err := get(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	apply(current)

	updated, err = write(ctx, tx, id, current)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return updated, nil
}
