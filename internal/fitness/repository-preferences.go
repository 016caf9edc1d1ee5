package fitness

import (
	"context"
	"log/slog"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/recommend"
)

type sqlitePreferenceRepository struct {
	baseRepository
}

func verdict(liked bool) string {
	if liked {
		return verdictLiked
	}
	return verdictDisliked
}

// Set records feedback. A later verdict for the same item replaces the earlier one.
func (r *sqlitePreferenceRepository) Set(ctx context.Context, userID string, f Feedback) error {
	attrs := []slog.Attr{slog.String("domain", string(f.Domain)), slog.String("item", f.ItemName)}
	if f.Global {
		if _, err := r.db.ReadWrite.ExecContext(ctx, `
			INSERT INTO global_preferences (user_id, domain, item_name, verdict)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, domain, item_name) DO UPDATE SET verdict = excluded.verdict`,
			userID, f.Domain, f.ItemName, verdict(f.Liked)); err != nil {
			return errors.Wrap(err, "upsert global preference", attrs...)
		}
		return nil
	}
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO preferences (user_id, domain, context, item_name, verdict)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, domain, context, item_name) DO UPDATE SET verdict = excluded.verdict`,
		userID, f.Domain, f.Context, f.ItemName, verdict(f.Liked)); err != nil {
		return errors.Wrap(err, "upsert preference", append(attrs, slog.String("context", f.Context))...)
	}
	return nil
}

func addVerdict(p *recommend.Preferences, name, v string) {
	if p.Liked == nil {
		p.Liked = recommend.NewNameSet()
		p.Disliked = recommend.NewNameSet()
	}
	if v == verdictLiked {
		p.Liked.Add(name)
		return
	}
	p.Disliked.Add(name)
}

// Load returns all preferences of the domain.
func (r *sqlitePreferenceRepository) Load(ctx context.Context, userID string, domain Domain) (recommend.PreferenceSet, error) {
	set := recommend.PreferenceSet{
		Contexts: map[string]recommend.Preferences{},
		Global:   recommend.Preferences{Liked: recommend.NewNameSet(), Disliked: recommend.NewNameSet()},
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT context, item_name, verdict
		FROM preferences
		WHERE user_id = ? AND domain = ?`, userID, domain)
	if err != nil {
		return recommend.PreferenceSet{}, errors.Wrap(err, "query preferences")
	}
	defer rows.Close()
	for rows.Next() {
		var ctxName, name, v string
		if err = rows.Scan(&ctxName, &name, &v); err != nil {
			return recommend.PreferenceSet{}, errors.Wrap(err, "scan preference")
		}
		p := set.Contexts[ctxName]
		addVerdict(&p, name, v)
		set.Contexts[ctxName] = p
	}
	if err = rows.Err(); err != nil {
		return recommend.PreferenceSet{}, errors.Wrap(err, "iterate preferences")
	}

	globalRows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT item_name, verdict
		FROM global_preferences
		WHERE user_id = ? AND domain = ?`, userID, domain)
	if err != nil {
		return recommend.PreferenceSet{}, errors.Wrap(err, "query global preferences")
	}
	defer globalRows.Close()
	for globalRows.Next() {
		var name, v string
		if err = globalRows.Scan(&name, &v); err != nil {
			return recommend.PreferenceSet{}, errors.Wrap(err, "scan global preference")
		}
		addVerdict(&set.Global, name, v)
	}
	if err = globalRows.Err(); err != nil {
		return recommend.PreferenceSet{}, errors.Wrap(err, "iterate global preferences")
	}
	return set, nil
}
