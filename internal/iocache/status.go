package iocache

import (
	"context"
	"fmt"
	"io"

	"github.com/huangsam/impact/schema"
)

// GetStatus returns status information about the contributor store.
func (cs *ContributorStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(cs.backend),
		Connected:  cs.db != nil,
		TableSizes: make(map[string]int),
	}

	if cs.disabled() {
		return status, nil
	}

	query := cs.q(`SELECT s.repo, s.branch, s.indexed_at, COUNT(a.author_id)
		FROM %s s LEFT JOIN %s a ON a.repo = s.repo AND a.branch = s.branch
		GROUP BY s.repo, s.branch, s.indexed_at
		ORDER BY s.repo, s.branch`, snapshotsTable, authorsTable)
	rows, err := cs.db.QueryContext(ctx, query)
	if err != nil {
		return status, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var b schema.BranchStatus
		var indexedAt int64
		if err := rows.Scan(&b.Repo, &b.Branch, &indexedAt, &b.Authors); err != nil {
			return status, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		b.IndexedAt = fromMillis(indexedAt)
		if b.IndexedAt.After(status.LastIndex) {
			status.LastIndex = b.IndexedAt
		}
		status.Branches = append(status.Branches, b)
	}
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("error iterating snapshots: %w", err)
	}
	status.Snapshots = len(status.Branches)

	for _, table := range storeTables {
		var count int
		row := cs.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, cs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.Authors = status.TableSizes[authorsTable]

	return status, nil
}

// PrintStatus writes store status information to w.
func PrintStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Snapshots: %d\n", status.Snapshots)
	_, _ = fmt.Fprintf(w, "Authors: %d\n", status.Authors)
	if status.Snapshots > 0 {
		_, _ = fmt.Fprintf(w, "Last Index: %s\n", status.LastIndex.Format("2006-01-02 15:04:05"))
	}
	for _, b := range status.Branches {
		_, _ = fmt.Fprintf(w, "  %s@%s: %d authors, indexed %s\n", b.Repo, b.Branch, b.Authors, b.IndexedAt.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range storeTables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
