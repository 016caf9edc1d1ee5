package fitness

import (
	"context"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/recommend"
)

type sqliteProfileRepository struct {
	baseRepository
}

// Get returns ErrNotFound when the user has not saved a profile.
func (r *sqliteProfileRepository) Get(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	var styles, goals, avoided, equipment string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT experience, styles, goals, avoided, owned_equipment, full_facility, target_minutes, weight_lb,
		       calorie_goal, protein_goal, carbs_goal, fat_goal
		FROM profiles
		WHERE user_id = ?`, userID).Scan(
		&p.Experience, &styles, &goals, &avoided, &equipment, &p.FullFacility, &p.TargetMinutes, &p.WeightLb,
		&p.CalorieGoal, &p.ProteinGoal, &p.CarbsGoal, &p.FatGoal)
	if err != nil {
		return Profile{}, errors.Wrap(notFound(err), "query profile")
	}
	if p.Styles, err = decodeList[string](styles); err != nil {
		return Profile{}, errors.Wrap(err, "decode styles")
	}
	if p.Goals, err = decodeList[string](goals); err != nil {
		return Profile{}, errors.Wrap(err, "decode goals")
	}
	if p.AvoidedCategories, err = decodeList[recommend.Category](avoided); err != nil {
		return Profile{}, errors.Wrap(err, "decode avoided categories")
	}
	if p.OwnedEquipment, err = decodeList[recommend.Equipment](equipment); err != nil {
		return Profile{}, errors.Wrap(err, "decode owned equipment")
	}
	return p, nil
}

func (r *sqliteProfileRepository) Set(ctx context.Context, userID string, p Profile, now string) error {
	var (
		styles, goals, avoided, equipment string
		err                               error
	)
	if styles, err = encodeList(p.Styles); err != nil {
		return err
	}
	if goals, err = encodeList(p.Goals); err != nil {
		return err
	}
	if avoided, err = encodeList(p.AvoidedCategories); err != nil {
		return err
	}
	if equipment, err = encodeList(p.OwnedEquipment); err != nil {
		return err
	}
	experience := p.Experience
	if experience == "" {
		experience = recommend.ExperienceBeginner
	}
	target := p.TargetMinutes
	if target <= 0 {
		target = recommend.DefaultTargetMinutes
	}
	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, experience, styles, goals, avoided, owned_equipment, full_facility, target_minutes, weight_lb,
			calorie_goal, protein_goal, carbs_goal, fat_goal, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			experience = excluded.experience,
			styles = excluded.styles,
			goals = excluded.goals,
			avoided = excluded.avoided,
			owned_equipment = excluded.owned_equipment,
			full_facility = excluded.full_facility,
			target_minutes = excluded.target_minutes,
			weight_lb = excluded.weight_lb,
			calorie_goal = excluded.calorie_goal,
			protein_goal = excluded.protein_goal,
			carbs_goal = excluded.carbs_goal,
			fat_goal = excluded.fat_goal,
			updated_at = excluded.updated_at`,
		userID, experience, styles, goals, avoided, equipment, p.FullFacility, target, p.WeightLb,
		p.CalorieGoal, p.ProteinGoal, p.CarbsGoal, p.FatGoal, now)
	if err != nil {
		return errors.Wrap(err, "upsert profile")
	}
	return nil
}
