package database

import (
	"context"

	"submitserver/models"
)

func (s *Store) GetUser(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

// UpsertProviderUser はDiscordのユーザーIDでユーザーを探し、無ければ作成します。名前は毎回更新します。
func (s *Store) UpsertProviderUser(ctx context.Context, providerID, name string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where(models.User{ProviderID: providerID}).
		Assign(models.User{Name: name}).
		FirstOrCreate(&user).Error
	return user, err
}

// UpdateProfile はプロフィールの許可された項目だけを更新します。
func (s *Store) UpdateProfile(ctx context.Context, userID uint, req models.ProfileRequest) (models.User, error) {
	var user models.User
	changes := models.User{}
	changes.Apply(req)

	err := s.db.WithContext(ctx).Model(&models.User{ID: userID}).
		Select("display_name", "email", "pronouns", "show_pronouns", "show_submissions").
		Updates(&changes).Error
	if err != nil {
		return user, err
	}
	return s.GetUser(ctx, userID)
}
