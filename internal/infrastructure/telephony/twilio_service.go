package telephony

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/you/gatesvc/domain"
)

// TwilioServiceImpl implements domain.TelephonyService
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	configured bool
}

// NewTwilioService creates a new Twilio telephony service. With empty
// credentials the service runs in mock mode: calls are logged instead of
// placed, which keeps development environments working without an account.
func NewTwilioService(accountSID, authToken string) domain.TelephonyService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		configured: accountSID != "" && authToken != "",
	}
}

// PlaceCall implements domain.TelephonyService. The gate opens when it
// answers a call from its authorized number; the call body is irrelevant,
// so a minimal TwiML URL is all the provider needs.
func (t *TwilioServiceImpl) PlaceCall(ctx context.Context, toNumber, fromNumber, statusCallbackURL string) (string, error) {
	if !t.configured {
		log.Printf("[MOCK CALL] To: %s, From: %s", toNumber, fromNumber)
		return "CA_mock_call_sid", nil
	}

	params := &twilioApi.CreateCallParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetTwiml("<Response><Hangup/></Response>")
	if statusCallbackURL != "" {
		params.SetStatusCallback(statusCallbackURL)
		params.SetStatusCallbackEvent([]string{"completed"})
	}

	call, err := t.client.Api.CreateCall(params)
	if err != nil {
		return "", fmt.Errorf("failed to place call: %w", err)
	}
	if call.Sid == nil {
		return "", fmt.Errorf("provider returned a call without a SID")
	}
	return *call.Sid, nil
}

// Balance implements domain.TelephonyService
func (t *TwilioServiceImpl) Balance(ctx context.Context) (float64, string, error) {
	if !t.configured {
		return 0, "", fmt.Errorf("telephony credentials not configured")
	}

	balance, err := t.client.Api.FetchBalance(&twilioApi.FetchBalanceParams{})
	if err != nil {
		return 0, "", fmt.Errorf("failed to fetch balance: %w", err)
	}
	if balance.Balance == nil {
		return 0, "", fmt.Errorf("provider returned an empty balance")
	}

	amount, err := strconv.ParseFloat(*balance.Balance, 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse balance %q: %w", *balance.Balance, err)
	}

	currency := ""
	if balance.Currency != nil {
		currency = *balance.Currency
	}
	return amount, currency, nil
}

// Compile-time interface compliance verification
var _ domain.TelephonyService = (*TwilioServiceImpl)(nil)
