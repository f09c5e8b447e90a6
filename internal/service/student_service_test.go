package service

import (
	"context"
	"testing"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestStudents(t *testing.T) (*StudentService, *AuthService, *fakePrincipalStore, *fakeMailer) {
	t.Helper()
	store := newFakeStore()
	mailer := &fakeMailer{}
	auth := NewAuthService(testConfig(), store, mailer, zerolog.Nop())
	return NewStudentService(store, auth, mailer, zerolog.Nop()), auth, store, mailer
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates unverified student and mails the link", func(t *testing.T) {
		svc, auth, store, mailer := newTestStudents(t)

		p, err := svc.Register(context.Background(), &model.RegisterStudentRequest{
			UserName: "Asha",
			Email:    "asha@test",
			Mobile:   "5550100",
			Password: "Secret!1",
		})
		require.NoError(t, err)
		require.Equal(t, model.RoleStudent, p.Role)
		require.False(t, p.IsVerified)
		require.NotEqual(t, "Secret!1", p.PasswordHash)
		require.NoError(t, auth.CheckPassword(p.PasswordHash, "Secret!1"))

		stored := mustGet(t, store, p.ID)
		require.NotNil(t, stored.MailVerificationToken)
		require.Equal(t, 1, mailer.count())
		require.Equal(t, "asha@test", mailer.last().To)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _, _ := newTestStudents(t)

		req := &model.RegisterStudentRequest{
			UserName: "Asha",
			Email:    "asha@test",
			Mobile:   "5550100",
			Password: "Secret!1",
		}
		_, err := svc.Register(context.Background(), req)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), req)
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestFindOrCreateGoogleStudent(t *testing.T) {
	t.Parallel()

	t.Run("new account is created verified", func(t *testing.T) {
		svc, auth, store, _ := newTestStudents(t)

		p, err := svc.FindOrCreateGoogleStudent(context.Background(), "g@test", "Gina")
		require.NoError(t, err)
		require.True(t, p.IsVerified)
		require.Equal(t, model.RoleStudent, p.Role)

		// The placeholder password is unusable for form login.
		stored := mustGet(t, store, p.ID)
		require.ErrorIs(t, auth.CheckPassword(stored.PasswordHash, ""), ErrInvalidCredentials)
	})

	t.Run("existing unverified student becomes verified", func(t *testing.T) {
		svc, auth, store, _ := newTestStudents(t)
		seeded := seedPrincipal(t, auth, store, model.RoleStudent, "g@test", "Secret!1", false)

		p, err := svc.FindOrCreateGoogleStudent(context.Background(), "g@test", "Gina")
		require.NoError(t, err)
		require.Equal(t, seeded.ID, p.ID)
		require.True(t, p.IsVerified)
		require.True(t, mustGet(t, store, seeded.ID).IsVerified)
	})
}

func TestGetStudentByID(t *testing.T) {
	t.Parallel()
	svc, auth, store, _ := newTestStudents(t)
	student := seedPrincipal(t, auth, store, model.RoleStudent, "s@test", "Secret!1", true)
	admin := seedPrincipal(t, auth, store, model.RoleAdmin, "a@test", "Secret!1", true)

	got, err := svc.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, student.ID, got.ID)

	// An admin ID through the student lens is a miss, not a leak.
	_, err = svc.GetByID(context.Background(), admin.ID)
	require.ErrorIs(t, err, ErrPrincipalNotFound)

	_, err = svc.GetByID(context.Background(), 9999)
	require.ErrorIs(t, err, ErrPrincipalNotFound)
}

func TestAssignCounselor(t *testing.T) {
	t.Parallel()

	t.Run("requires an admin counselor", func(t *testing.T) {
		svc, auth, store, _ := newTestStudents(t)
		student := seedPrincipal(t, auth, store, model.RoleStudent, "s@test", "Secret!1", true)
		other := seedPrincipal(t, auth, store, model.RoleStudent, "o@test", "Secret!1", true)

		err := svc.AssignCounselor(context.Background(), student.ID, other.ID)
		require.ErrorIs(t, err, ErrCounselorInvalid)

		err = svc.AssignCounselor(context.Background(), student.ID, 9999)
		require.ErrorIs(t, err, ErrCounselorInvalid)
	})

	t.Run("assignment sticks and lists by counselor", func(t *testing.T) {
		svc, auth, store, _ := newTestStudents(t)
		student := seedPrincipal(t, auth, store, model.RoleStudent, "s@test", "Secret!1", true)
		counselor := seedPrincipal(t, auth, store, model.RoleAdmin, "c@test", "Secret!1", true)

		require.NoError(t, svc.AssignCounselor(context.Background(), student.ID, counselor.ID))

		stored := mustGet(t, store, student.ID)
		require.NotNil(t, stored.CounselorID)
		require.Equal(t, counselor.ID, *stored.CounselorID)

		mine, err := svc.ListByCounselor(context.Background(), counselor.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, student.ID, mine[0].ID)
	})
}

func TestToggleWishlist(t *testing.T) {
	t.Parallel()
	svc, auth, store, _ := newTestStudents(t)
	student := seedPrincipal(t, auth, store, model.RoleStudent, "s@test", "Secret!1", true)

	listed, err := svc.ToggleWishlist(context.Background(), student.ID, 7)
	require.NoError(t, err)
	require.True(t, listed)

	items, err := svc.GetWishlist(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	listed, err = svc.ToggleWishlist(context.Background(), student.ID, 7)
	require.NoError(t, err)
	require.False(t, listed)

	items, err = svc.GetWishlist(context.Background(), student.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestApply(t *testing.T) {
	t.Parallel()
	svc, auth, store, _ := newTestStudents(t)
	student := seedPrincipal(t, auth, store, model.RoleStudent, "s@test", "Secret!1", true)

	require.NoError(t, svc.Apply(context.Background(), student.ID, 7))
	require.ErrorIs(t, svc.Apply(context.Background(), student.ID, 7), ErrAlreadyApplied)

	apps, err := svc.ListApplications(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Nil(t, apps[0].Status)
}

func TestListStudents(t *testing.T) {
	t.Parallel()
	svc, auth, store, _ := newTestStudents(t)
	seedPrincipal(t, auth, store, model.RoleStudent, "s1@test", "Secret!1", true)
	seedPrincipal(t, auth, store, model.RoleStudent, "s2@test", "Secret!1", true)
	seedPrincipal(t, auth, store, model.RoleAdmin, "a@test", "Secret!1", true)

	students, pag, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.NotNil(t, pag)
	require.Equal(t, 2, pag.TotalItems)
	require.Equal(t, 1, pag.Page)
}
