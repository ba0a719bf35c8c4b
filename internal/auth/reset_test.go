package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoDocVault/GoDocVault/internal/db/controller/account"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
)

// issuedTicket reads the stored ticket straight from the test database;
// in production it travels to the user via the delivery collaborator.
func issuedTicket(t *testing.T, svc *Service, email string) string {
	t.Helper()

	acct, err := account.FindByEmail(svc.db, email)
	require.NoError(t, err)
	require.NotEmpty(t, acct.ResetTicketValue, "no ticket on record")

	return acct.ResetTicketValue
}

func TestRequestResetIsGenericForUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register("Olga", "olga@example.com", "pw", models.RoleStaff, "")
	require.NoError(t, err)

	// identical observable outcome for known and unknown addresses
	assert.NoError(t, svc.RequestReset("olga@example.com"))
	assert.NoError(t, svc.RequestReset("stranger@example.com"))
}

func TestRequestResetOverwritesPriorTicket(t *testing.T) {
	svc, now := newTestService(t)

	acct, _, err := svc.Register("Pam", "pam@example.com", "pw", models.RoleStaff, "")
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset("pam@example.com"))
	first := issuedTicket(t, svc, "pam@example.com")

	require.NoError(t, svc.RequestReset("pam@example.com"))
	second := issuedTicket(t, svc, "pam@example.com")

	assert.NotEqual(t, first, second, "a new request replaces the old ticket")

	// at most one live ticket: the first one is dead
	assert.ErrorIs(t, svc.CompleteReset(first, "newpw"), ErrInvalidOrExpiredTicket)

	stored, err := account.FindByID(svc.db, acct.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetTicketExpiresAt)
	assert.True(t, stored.ResetTicketExpiresAt.Equal(now.Add(time.Hour)), "ticket expires exactly one hour after issuance")
}

func TestCompleteReset(t *testing.T) {
	svc, _ := newTestService(t)

	acct, oldToken, err := svc.Register("Quinn", "quinn@example.com", "oldpw", models.RoleStaff, "")
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset("quinn@example.com"))
	ticket := issuedTicket(t, svc, "quinn@example.com")

	require.NoError(t, svc.CompleteReset(ticket, "newpw"))

	// old secret gone, new one works
	_, _, err = svc.Login("quinn@example.com", "oldpw", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("quinn@example.com", "newpw", "")
	require.NoError(t, err)

	// every pre-reset session is dead
	_, err = svc.Resolve(oldToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// the ticket was cleared
	stored, err := account.FindByID(svc.db, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ResetTicketValue)
}

func TestCompleteResetIsSingleUse(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register("Rita", "rita@example.com", "pw", models.RoleStaff, "")
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset("rita@example.com"))
	ticket := issuedTicket(t, svc, "rita@example.com")

	require.NoError(t, svc.CompleteReset(ticket, "first"))
	assert.ErrorIs(t, svc.CompleteReset(ticket, "second"), ErrInvalidOrExpiredTicket)

	// the first redemption stands
	_, _, err = svc.Login("rita@example.com", "first", "")
	require.NoError(t, err)
}

func TestCompleteResetRejectsExpiredTicket(t *testing.T) {
	svc, now := newTestService(t)

	_, _, err := svc.Register("Sven", "sven@example.com", "pw", models.RoleStaff, "")
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset("sven@example.com"))
	ticket := issuedTicket(t, svc, "sven@example.com")

	// advance past the one-hour lifetime
	svc.now = func() time.Time { return now.Add(time.Hour + time.Second) }

	assert.ErrorIs(t, svc.CompleteReset(ticket, "newpw"), ErrInvalidOrExpiredTicket)

	// secret unchanged
	_, _, err = svc.Login("sven@example.com", "pw", "")
	require.NoError(t, err)
}

func TestCompleteResetUnknownTicket(t *testing.T) {
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.CompleteReset("no-such-ticket", "pw"), ErrInvalidOrExpiredTicket)
	assert.ErrorIs(t, svc.CompleteReset("", "pw"), ErrInvalidOrExpiredTicket)
}
