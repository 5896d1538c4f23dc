package service

import (
	"testing"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKitchenFixture(t *testing.T) (*fixture, KitchenService, repository.KitchenRepository, repository.UserRepository) {
	t.Helper()
	f := newFixture(t)
	kitchenRepo := repository.NewKitchenRepo(f.db)
	userRepo := repository.NewUserRepo(f.db)

	kitchen := &model.Kitchen{
		Name:           "Home",
		InvitationCode: "HOME-1234",
		AlertsEnabled:  true,
		AlertTimeHour:  8,
	}
	require.NoError(t, kitchenRepo.Create(kitchen))
	f.caller.KitchenID = kitchen.ID

	return f, NewKitchenService(kitchenRepo, userRepo), kitchenRepo, userRepo
}

func TestGetKitchenExposesInvitationCode(t *testing.T) {
	f, svc, _, _ := newKitchenFixture(t)

	kitchen, err := svc.GetKitchen(f.caller)
	require.NoError(t, err)
	assert.Equal(t, "Home", kitchen.Name)
	assert.Equal(t, "HOME-1234", kitchen.InvitationCode)

	f.caller.KitchenID = f.caller.UserID // no kitchen with this id
	_, err = svc.GetKitchen(f.caller)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMembersOmitsCredentials(t *testing.T) {
	f, svc, _, userRepo := newKitchenFixture(t)

	member := &model.User{
		Email:     "ana@example.com",
		Name:      "Ana",
		KitchenID: &f.caller.KitchenID,
		IsActive:  true,
	}
	require.NoError(t, member.SetPassword("secret"))
	require.NoError(t, userRepo.Create(member))

	members, err := svc.GetMembers(f.caller)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "ana@example.com", members[0].Email)
	assert.Equal(t, member.ID, members[0].ID)
}

func TestUpdateAlertSettingsPatchesAndValidates(t *testing.T) {
	f, svc, kitchenRepo, _ := newKitchenFixture(t)

	enabled := false
	hour := 21
	kitchen, err := svc.UpdateAlertSettings(f.caller, &UpdateKitchenAlertsRequest{
		AlertsEnabled: &enabled,
		AlertTimeHour: &hour,
	})
	require.NoError(t, err)
	assert.False(t, kitchen.AlertsEnabled)
	assert.Equal(t, 21, kitchen.AlertTimeHour)
	assert.Equal(t, 0, kitchen.AlertTimeMinute, "unset fields keep their value")

	stored, err := kitchenRepo.FindByID(f.caller.KitchenID)
	require.NoError(t, err)
	assert.Equal(t, 21, stored.AlertTimeHour)

	badHour := 24
	_, err = svc.UpdateAlertSettings(f.caller, &UpdateKitchenAlertsRequest{AlertTimeHour: &badHour})
	assert.ErrorIs(t, err, ErrInvalidAlertTime)

	badMinute := 60
	_, err = svc.UpdateAlertSettings(f.caller, &UpdateKitchenAlertsRequest{AlertTimeMinute: &badMinute})
	assert.ErrorIs(t, err, ErrInvalidAlertTime)
}
