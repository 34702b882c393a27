package payment_gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"clinicbook-service/internal/app/config"
	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/dto/requests"
	"clinicbook-service/internal/pkg/dto/responses"
	"clinicbook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	gatewayServiceInstance contracts.PaymentGatewayService
	onceGatewayService     sync.Once
)

type gatewayService struct {
	BaseUrl       string
	ApiKey        string
	MerchantID    string
	HTTPClient    *http.Client
	VerifyLimiter *rate.Limiter
	Log           *zap.Logger
}

// NewGatewayService builds the adapter over the external QR payment gateway.
// An empty base URL leaves the adapter unconfigured; callers must check
// Configured before requesting a QR so the flow can fall back to pay at
// clinic with an explicit message.
func NewGatewayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	onceGatewayService.Do(func() {
		verifyRate := internalConfig.PaymentGateway.VerifyRatePerSecond
		if verifyRate <= 0 {
			verifyRate = 1
		}
		instance := &gatewayService{
			BaseUrl:    internalConfig.PaymentGateway.BaseUrl,
			ApiKey:     internalConfig.PaymentGateway.ApiKey,
			MerchantID: internalConfig.PaymentGateway.MerchantID,
			HTTPClient: &http.Client{
				Timeout: time.Duration(internalConfig.PaymentGateway.RequestTimeoutInSeconds) * time.Second,
			},
			VerifyLimiter: rate.NewLimiter(rate.Limit(verifyRate), verifyRate),
			Log:           logger,
		}
		gatewayServiceInstance = instance
	})
	return gatewayServiceInstance
}

func (s *gatewayService) Configured() bool {
	return s.BaseUrl != ""
}

type generateQRPayload struct {
	MerchantID    string `json:"merchant_id"`
	OrderID       string `json:"order_id"`
	Amount        int    `json:"amount"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	AppointmentID string `json:"appointment_id"`
	ServiceType   string `json:"service_type"`
}

func (s *gatewayService) GenerateQR(ctx context.Context, request *requests.GatewayQRRequest) (*responses.GatewayQRResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("gatewayService.GenerateQR called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.Int(constvars.LoggingAmountKey, request.Amount),
		zap.Int(constvars.LoggingQRGenerationKey, request.Generation),
	)

	if !s.Configured() {
		return nil, exceptions.ErrPaymentGatewayUnavailable(fmt.Errorf("payment gateway base url is empty"))
	}

	body, err := json.Marshal(generateQRPayload{
		MerchantID:    s.MerchantID,
		OrderID:       request.OrderID,
		Amount:        request.Amount,
		CustomerID:    request.CustomerID,
		CustomerName:  request.CustomerName,
		CustomerEmail: request.CustomerEmail,
		CustomerPhone: request.CustomerPhone,
		AppointmentID: request.AppointmentID,
		ServiceType:   request.ServiceType,
	})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseUrl+"/v1/qr/generate", bytes.NewReader(body))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	httpRequest.Header.Set("X-Api-Key", s.ApiKey)

	httpResponse, err := s.HTTPClient.Do(httpRequest)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, exceptions.ErrGatewayRequest(fmt.Errorf("gateway returned status %d", httpResponse.StatusCode))
	}

	response := new(responses.GatewayQRResponse)
	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if response.TransactionID == "" {
		return nil, exceptions.ErrInvalidPaymentResponse(fmt.Errorf("gateway QR response missing transaction id"))
	}

	s.Log.Info("gatewayService.GenerateQR succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.String(constvars.LoggingTransactionIDKey, response.TransactionID),
	)
	return response, nil
}

// VerifyPayment is safe to call repeatedly for the same transaction; the
// gateway treats it as a read. The limiter keeps status polling from
// hammering the upstream.
func (s *gatewayService) VerifyPayment(ctx context.Context, transactionID string) (*responses.GatewayVerifyResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("gatewayService.VerifyPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)

	if !s.Configured() {
		return nil, exceptions.ErrPaymentGatewayUnavailable(fmt.Errorf("payment gateway base url is empty"))
	}

	if err := s.VerifyLimiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrGatewayRequest(err)
	}

	url := fmt.Sprintf("%s/v1/payment/verify?%s=%s", s.BaseUrl, constvars.QueryParamTransactionID, transactionID)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	httpRequest.Header.Set("X-Api-Key", s.ApiKey)

	httpResponse, err := s.HTTPClient.Do(httpRequest)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, exceptions.ErrGatewayRequest(fmt.Errorf("gateway returned status %d", httpResponse.StatusCode))
	}

	response := new(responses.GatewayVerifyResponse)
	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	s.Log.Info("gatewayService.VerifyPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
		zap.String(constvars.LoggingPaymentStatusKey, response.Status),
	)
	return response, nil
}
