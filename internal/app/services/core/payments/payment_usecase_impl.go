package payments

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"sync"
	"time"

	"clinicbook-service/internal/app/config"
	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/dto/requests"
	"clinicbook-service/internal/pkg/dto/responses"
	"clinicbook-service/internal/pkg/exceptions"
	"clinicbook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

type paymentUsecase struct {
	DraftRepository       contracts.BookingDraftRepository
	TransactionRepository contracts.TransactionRepository
	CatalogRepository     contracts.CatalogRepository
	PaymentGateway        contracts.PaymentGatewayService
	Storage               contracts.Storage
	Locker                contracts.LockerService
	Notification          contracts.NotificationPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewPaymentUsecase(
	draftRepository contracts.BookingDraftRepository,
	transactionRepository contracts.TransactionRepository,
	catalogRepository contracts.CatalogRepository,
	paymentGateway contracts.PaymentGatewayService,
	storageService contracts.Storage,
	lockerService contracts.LockerService,
	notificationPublisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			DraftRepository:       draftRepository,
			TransactionRepository: transactionRepository,
			CatalogRepository:     catalogRepository,
			PaymentGateway:        paymentGateway,
			Storage:               storageService,
			Locker:                lockerService,
			Notification:          notificationPublisher,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

func (uc *paymentUsecase) draftTTL() time.Duration {
	return time.Duration(uc.InternalConfig.Booking.DraftTTLInMinutes) * time.Minute
}

// GenerateQR mints a fresh QR code for the draft's pending order. Each call
// bumps the draft's generation counter first; if by the time the gateway
// answers the draft carries a newer generation, this response lost the race
// and is thrown away.
func (uc *paymentUsecase) GenerateQR(ctx context.Context, draftID string) (*responses.QRPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GenerateQR called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	draft, err := uc.DraftRepository.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.BookingStatusProcessingPayment || draft.Payment == nil {
		return nil, exceptions.ErrQRNotActive(fmt.Errorf("draft %s is not processing a payment", draftID))
	}
	if draft.Payment.Method != models.PaymentMethodQR {
		return nil, exceptions.ErrQRNotActive(fmt.Errorf("draft %s selected method %s, not qr", draftID, draft.Payment.Method))
	}

	transaction, err := uc.TransactionRepository.FindByOrderID(ctx, draft.Payment.OrderID)
	if err != nil {
		return nil, err
	}
	if transaction.Status.IsTerminal() {
		return nil, exceptions.ErrQRNotActive(fmt.Errorf("transaction %s already settled as %s", transaction.OrderID, transaction.Status))
	}

	generation := draft.Payment.QRGeneration + 1
	draft.Payment.QRGeneration = generation
	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.GenerateQR requesting QR from gateway",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
		zap.Int(constvars.LoggingQRGenerationKey, generation),
	)

	qrRequest := &requests.GatewayQRRequest{
		OrderID:       transaction.OrderID,
		Amount:        transaction.Amount,
		AppointmentID: draft.ID,
		Generation:    generation,
	}
	if draft.PatientInfo != nil {
		// The gateway keys customers by phone; the rest is display data on
		// the payment page.
		qrRequest.CustomerID = draft.PatientInfo.Phone
		qrRequest.CustomerName = draft.PatientInfo.Name
		qrRequest.CustomerEmail = draft.PatientInfo.Email
		qrRequest.CustomerPhone = draft.PatientInfo.Phone
	}
	if draft.Service != nil {
		qrRequest.ServiceType = draft.Service.Name
	}

	qrResponse, err := uc.PaymentGateway.GenerateQR(ctx, qrRequest)
	if err != nil {
		return nil, err
	}

	// The gateway round trip is slow; the user may have hit regenerate
	// again meanwhile. Only the response matching the current generation
	// may be written back.
	draft, err = uc.DraftRepository.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Payment == nil || draft.Payment.QRGeneration != generation {
		uc.Log.Info("paymentUsecase.GenerateQR discarding superseded response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
			zap.Int(constvars.LoggingQRGenerationKey, generation),
		)
		return nil, exceptions.ErrQRNotActive(fmt.Errorf("generation %d superseded on draft %s", generation, draftID))
	}

	imageBytes, err := base64.StdEncoding.DecodeString(qrResponse.QRImageBase64)
	if err != nil {
		return nil, exceptions.ErrInvalidPaymentResponse(err)
	}

	fileName := utils.GenerateFileName("qr", transaction.OrderID, ".png")
	bucketName := uc.InternalConfig.Booking.QRImageBucketName
	objectName, err := uc.Storage.UploadBase64Image(ctx, imageBytes, bucketName, fileName, ".png")
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Booking.QRImageExpiryInMinutes) * time.Minute
	imageURL, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
	if err != nil {
		return nil, err
	}

	draft.Payment.GatewayTransactionID = qrResponse.TransactionID
	draft.Payment.QRImageURL = imageURL
	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, err
	}

	transaction.GatewayTransactionID = qrResponse.TransactionID
	transaction.Status = models.TransactionProcessing
	if _, err := uc.TransactionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.GenerateQR succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
		zap.String(constvars.LoggingTransactionIDKey, qrResponse.TransactionID),
		zap.Int(constvars.LoggingQRGenerationKey, generation),
	)
	return &responses.QRPayment{
		OrderID:    transaction.OrderID,
		QRImageURL: imageURL,
		Generation: generation,
		ExpiresIn:  uc.InternalConfig.Booking.QRImageExpiryInMinutes * 60,
	}, nil
}

func (uc *paymentUsecase) CheckPaymentStatus(ctx context.Context, draftID string) (*responses.PaymentStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CheckPaymentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	draft, err := uc.DraftRepository.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	transaction, err := uc.TransactionRepository.FindByDraftID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if transaction.Status.IsTerminal() {
		return uc.buildPaymentStatus(draft, transaction), nil
	}

	if transaction.GatewayTransactionID == "" {
		// Nothing to verify yet; the gateway handshake has not happened.
		return &responses.PaymentStatus{
			OrderID: transaction.OrderID,
			Status:  string(models.TransactionPending),
		}, nil
	}

	verified, err := uc.PaymentGateway.VerifyPayment(ctx, transaction.GatewayTransactionID)
	if err != nil {
		return nil, err
	}

	uc.applyVerification(requestID, transaction, verified)
	draft, transaction, err = uc.settle(ctx, draft, transaction, verified.Status)
	if err != nil {
		return nil, err
	}
	return uc.buildPaymentStatus(draft, transaction), nil
}

// applyVerification folds the verify response's metadata into the
// transaction. An amount that disagrees with the order is flagged but does
// not block settlement; the gateway's records are authoritative for what
// was actually charged.
func (uc *paymentUsecase) applyVerification(requestID string, transaction *models.PaymentTransaction, verified *responses.GatewayVerifyResponse) {
	transaction.VerificationAttempts++
	if verified.PaymentMode != "" {
		transaction.PaymentMode = verified.PaymentMode
	}
	if verified.Amount != 0 && verified.Amount != transaction.Amount {
		uc.Log.Warn("paymentUsecase.applyVerification verified amount does not match order",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
			zap.Int(constvars.LoggingAmountKey, transaction.Amount),
			zap.Int(constvars.LoggingVerifiedAmountKey, verified.Amount),
		)
	}
}

func (uc *paymentUsecase) buildPaymentStatus(draft *models.BookingDraft, transaction *models.PaymentTransaction) *responses.PaymentStatus {
	status := &responses.PaymentStatus{
		OrderID:     transaction.OrderID,
		Status:      string(transaction.Status),
		PaymentMode: transaction.PaymentMode,
	}
	switch transaction.Status {
	case models.TransactionSuccess:
		status.BookingID = draft.BookingID
		status.Message = constvars.BookingConfirmedMessage
	case models.TransactionAborted:
		status.Message = constvars.PaymentCancelledMessage
	case models.TransactionFailed:
		status.Message = constvars.PaymentFailedShownMessage
	}
	return status
}

// HandleCallback processes the gateway redirect. The redirect's own status
// parameter is never trusted on its own; the outcome is re-verified with the
// gateway before anything settles. Replays of an already settled order are
// answered from stored state.
func (uc *paymentUsecase) HandleCallback(ctx context.Context, request *requests.PaymentCallback) (*responses.CallbackResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.HandleCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.String(constvars.LoggingPaymentStatusKey, request.OrderStatus),
	)

	if !knownGatewayStatus(request.OrderStatus) {
		return nil, exceptions.ErrInvalidPaymentResponse(fmt.Errorf("unrecognized order status %q", request.OrderStatus))
	}

	transaction, err := uc.TransactionRepository.FindByOrderID(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}

	// The redirect's amount is display data, but a disagreement with the
	// order it names is worth flagging before anything settles.
	if request.Amount != "" {
		callbackAmount, parseErr := strconv.Atoi(request.Amount)
		if parseErr != nil || callbackAmount != transaction.Amount {
			uc.Log.Warn("paymentUsecase.HandleCallback redirect amount does not match order",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
				zap.String(constvars.LoggingCallbackAmountKey, request.Amount),
				zap.Int(constvars.LoggingAmountKey, transaction.Amount),
			)
		}
	}

	draft, err := uc.DraftRepository.FindDraftByID(ctx, transaction.DraftID)
	if err != nil {
		return nil, err
	}

	if transaction.Status.IsTerminal() {
		uc.Log.Info("paymentUsecase.HandleCallback replay of settled order",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
			zap.String(constvars.LoggingPaymentStatusKey, string(transaction.Status)),
		)
		return uc.buildCallbackResult(draft, transaction), nil
	}

	gatewayTransactionID := transaction.GatewayTransactionID
	if gatewayTransactionID == "" {
		gatewayTransactionID = request.TransactionID
	}
	if gatewayTransactionID == "" {
		return nil, exceptions.ErrInvalidPaymentResponse(fmt.Errorf("callback for order %s carries no transaction id", request.OrderID))
	}

	verified, err := uc.PaymentGateway.VerifyPayment(ctx, gatewayTransactionID)
	if err != nil {
		return nil, err
	}

	transaction.GatewayTransactionID = gatewayTransactionID
	uc.applyVerification(requestID, transaction, verified)
	draft, transaction, err = uc.settle(ctx, draft, transaction, verified.Status)
	if err != nil {
		return nil, err
	}
	return uc.buildCallbackResult(draft, transaction), nil
}

func (uc *paymentUsecase) buildCallbackResult(draft *models.BookingDraft, transaction *models.PaymentTransaction) *responses.CallbackResult {
	result := &responses.CallbackResult{
		OrderID:     transaction.OrderID,
		Outcome:     callbackOutcome(transaction.Status),
		PaymentMode: transaction.PaymentMode,
	}
	switch transaction.Status {
	case models.TransactionSuccess:
		result.BookingID = draft.BookingID
		result.Message = constvars.BookingConfirmedMessage
	case models.TransactionAborted:
		result.Message = constvars.PaymentCancelledMessage
	case models.TransactionFailed:
		result.Message = constvars.PaymentFailedShownMessage
	default:
		result.Message = constvars.PaymentStatusMessage
	}
	return result
}

// callbackOutcome maps the settled transaction onto the outcome vocabulary
// the landing page renders. Anything not yet settled reads as its raw
// status.
func callbackOutcome(status models.TransactionStatus) string {
	switch status {
	case models.TransactionSuccess:
		return constvars.CallbackOutcomeSuccess
	case models.TransactionAborted:
		return constvars.CallbackOutcomeCancelled
	case models.TransactionFailed:
		return constvars.CallbackOutcomeFailed
	}
	return string(status)
}

func knownGatewayStatus(status string) bool {
	switch status {
	case constvars.GatewayStatusSuccess, constvars.GatewayStatusAborted, constvars.GatewayStatusPending, constvars.GatewayStatusFailed:
		return true
	}
	return false
}

// settle folds a verified gateway status into the transaction and the draft.
// Success confirms the booking. An aborted payment reopens the payment step
// so the patient can choose another method. A hard failure ends the draft.
func (uc *paymentUsecase) settle(ctx context.Context, draft *models.BookingDraft, transaction *models.PaymentTransaction, verifiedStatus string) (*models.BookingDraft, *models.PaymentTransaction, error) {
	switch verifiedStatus {
	case constvars.GatewayStatusSuccess:
		return uc.settleSuccess(ctx, draft, transaction)
	case constvars.GatewayStatusAborted:
		return uc.settleReopen(ctx, draft, transaction)
	case constvars.GatewayStatusFailed:
		return uc.settleFailed(ctx, draft, transaction)
	case constvars.GatewayStatusPending:
		if _, err := uc.TransactionRepository.UpdateTransaction(ctx, transaction); err != nil {
			return nil, nil, err
		}
		return draft, transaction, nil
	default:
		return nil, nil, exceptions.ErrGatewayRequest(fmt.Errorf("gateway verification returned unknown status %q", verifiedStatus))
	}
}

func (uc *paymentUsecase) settleSuccess(ctx context.Context, draft *models.BookingDraft, transaction *models.PaymentTransaction) (*models.BookingDraft, *models.PaymentTransaction, error) {
	transaction.Status = models.TransactionSuccess
	if _, err := uc.TransactionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return nil, nil, err
	}

	if err := uc.CatalogRepository.MarkSlotBooked(ctx, draft.Slot.ID); err != nil {
		return nil, nil, err
	}

	counter, err := uc.DraftRepository.NextBookingNumber(ctx)
	if err != nil {
		return nil, nil, err
	}
	draft.BookingID = utils.GenerateBookingID(uc.InternalConfig.Booking.IDPrefix, counter)
	draft.Status = models.BookingStatusConfirmed
	if draft.Payment != nil {
		draft.Payment.InFlight = false
	}
	uc.releaseSlotLock(ctx, draft)

	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, nil, err
	}

	if err := uc.Notification.PublishBookingConfirmed(ctx, draft.BookingID, draft.ID); err != nil {
		uc.Log.Warn("paymentUsecase.settleSuccess failed to publish confirmation event",
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.String(constvars.LoggingBookingIDKey, draft.BookingID),
			zap.Error(err),
		)
	}
	return draft, transaction, nil
}

func (uc *paymentUsecase) settleReopen(ctx context.Context, draft *models.BookingDraft, transaction *models.PaymentTransaction) (*models.BookingDraft, *models.PaymentTransaction, error) {
	transaction.Status = models.TransactionAborted
	if _, err := uc.TransactionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return nil, nil, err
	}

	// The slot reservation stays with the draft; only the method choice is
	// reset so the patient can try again.
	draft.Status = models.BookingStatusSelectingPayment
	draft.Payment = nil
	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, nil, err
	}

	if err := uc.Notification.PublishPaymentFailed(ctx, transaction.OrderID, draft.ID, string(models.TransactionAborted)); err != nil {
		uc.Log.Warn("paymentUsecase.settleReopen failed to publish payment event",
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
			zap.Error(err),
		)
	}
	return draft, transaction, nil
}

func (uc *paymentUsecase) settleFailed(ctx context.Context, draft *models.BookingDraft, transaction *models.PaymentTransaction) (*models.BookingDraft, *models.PaymentTransaction, error) {
	transaction.Status = models.TransactionFailed
	if _, err := uc.TransactionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return nil, nil, err
	}

	draft.Status = models.BookingStatusFailed
	if draft.Payment != nil {
		draft.Payment.InFlight = false
	}
	uc.releaseSlotLock(ctx, draft)
	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, nil, err
	}

	if err := uc.Notification.PublishPaymentFailed(ctx, transaction.OrderID, draft.ID, string(models.TransactionFailed)); err != nil {
		uc.Log.Warn("paymentUsecase.settleFailed failed to publish payment event",
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
			zap.Error(err),
		)
	}
	return draft, transaction, nil
}

func (uc *paymentUsecase) releaseSlotLock(ctx context.Context, draft *models.BookingDraft) {
	if draft.SlotLockValue == "" || draft.Slot == nil {
		return
	}
	lockKey := constvars.RedisSlotLockKeyPrefix + draft.Slot.ID
	if err := uc.Locker.Unlock(ctx, lockKey, draft.SlotLockValue); err != nil {
		uc.Log.Warn("paymentUsecase.releaseSlotLock failed to release lock",
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.String(constvars.LoggingSlotIDKey, draft.Slot.ID),
			zap.Error(err),
		)
	}
	draft.SlotLockValue = ""
}
