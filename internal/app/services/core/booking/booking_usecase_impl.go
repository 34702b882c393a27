package booking

import (
	"context"
	"fmt"
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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

type bookingUsecase struct {
	DraftRepository       contracts.BookingDraftRepository
	CatalogRepository     contracts.CatalogRepository
	TransactionRepository contracts.TransactionRepository
	PaymentGateway        contracts.PaymentGatewayService
	Locker                contracts.LockerService
	Notification          contracts.NotificationPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewBookingUsecase(
	draftRepository contracts.BookingDraftRepository,
	catalogRepository contracts.CatalogRepository,
	transactionRepository contracts.TransactionRepository,
	paymentGateway contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	notificationPublisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		instance := &bookingUsecase{
			DraftRepository:       draftRepository,
			CatalogRepository:     catalogRepository,
			TransactionRepository: transactionRepository,
			PaymentGateway:        paymentGateway,
			Locker:                lockerService,
			Notification:          notificationPublisher,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		bookingUsecaseInstance = instance
	})
	return bookingUsecaseInstance
}

func (uc *bookingUsecase) draftTTL() time.Duration {
	return time.Duration(uc.InternalConfig.Booking.DraftTTLInMinutes) * time.Minute
}

func (uc *bookingUsecase) slotLockTTL() time.Duration {
	return time.Duration(uc.InternalConfig.Booking.SlotLockTTLInSeconds) * time.Second
}

func (uc *bookingUsecase) CreateDraft(ctx context.Context) (*responses.DraftCreated, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CreateDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	now := time.Now()
	draft := &models.BookingDraft{
		ID:        uuid.NewString(),
		Status:    models.BookingStatusSelectingService,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.DraftRepository.CreateDraft(ctx, draft, uc.draftTTL())
	if err != nil {
		return nil, err
	}

	accessToken, err := utils.GenerateDraftJWT(draft.ID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInMinutes)
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	uc.Log.Info("bookingUsecase.CreateDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draft.ID),
	)
	return &responses.DraftCreated{
		DraftID:     draft.ID,
		AccessToken: accessToken,
		Status:      string(draft.Status),
		ExpiresIn:   uc.InternalConfig.Booking.DraftTTLInMinutes * 60,
	}, nil
}

func (uc *bookingUsecase) FindDraftByID(ctx context.Context, draftID string) (*responses.DraftView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.FindDraftByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	draft, err := uc.DraftRepository.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return buildDraftView(draft), nil
}

func (uc *bookingUsecase) Advance(ctx context.Context, draftID string, request *requests.AdvanceDraft) (*responses.DraftView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Advance called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	draft, err := uc.DraftRepository.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status.IsTerminal() {
		return nil, exceptions.ErrDraftTerminal(fmt.Errorf("draft %s is %s", draft.ID, draft.Status))
	}

	uc.Log.Info("bookingUsecase.Advance applying step",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.String(constvars.LoggingStepKey, string(draft.Status)),
	)

	switch draft.Status {
	case models.BookingStatusSelectingService:
		err = uc.advanceService(ctx, draft, request)
	case models.BookingStatusSelectingProvider:
		err = uc.advanceProvider(ctx, draft, request)
	case models.BookingStatusSelectingSlot:
		err = uc.advanceSlot(ctx, draft, request)
	case models.BookingStatusEnteringPatientInfo:
		err = uc.advancePatientInfo(ctx, draft, request)
	case models.BookingStatusSelectingPayment:
		err = uc.advancePayment(ctx, draft, request)
	default:
		err = exceptions.ErrDraftStepMismatch(fmt.Errorf("cannot advance from %s", draft.Status))
	}
	if err != nil {
		return nil, err
	}

	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, err
	}

	uc.Log.Info("bookingUsecase.Advance succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.String(constvars.LoggingDraftStatusKey, string(draft.Status)),
	)
	return buildDraftView(draft), nil
}

func (uc *bookingUsecase) advanceService(ctx context.Context, draft *models.BookingDraft, request *requests.AdvanceDraft) error {
	if request.ServiceID == "" {
		return exceptions.ErrDraftStepMismatch(fmt.Errorf("service_id is required at step %s", draft.Status))
	}

	service, err := uc.CatalogRepository.FindServiceByID(ctx, request.ServiceID)
	if err != nil {
		return err
	}

	// A changed service invalidates everything chosen after it.
	if draft.Service != nil && draft.Service.ID != service.ID {
		uc.releaseSlotLock(ctx, draft)
		clearFromStep(draft, models.BookingStatusSelectingProvider)
	}
	draft.Service = service
	draft.Status = models.BookingStatusSelectingProvider
	return nil
}

func (uc *bookingUsecase) advanceProvider(ctx context.Context, draft *models.BookingDraft, request *requests.AdvanceDraft) error {
	if request.ProviderID == "" {
		return exceptions.ErrDraftStepMismatch(fmt.Errorf("provider_id is required at step %s", draft.Status))
	}

	provider, err := uc.CatalogRepository.FindProviderByID(ctx, request.ProviderID)
	if err != nil {
		return err
	}
	if !provider.OffersService(draft.Service.ID) {
		return exceptions.ErrProviderNotQualified(fmt.Errorf("provider %s does not offer service %s", provider.ID, draft.Service.ID))
	}

	if draft.Provider != nil && draft.Provider.ID != provider.ID {
		uc.releaseSlotLock(ctx, draft)
		clearFromStep(draft, models.BookingStatusSelectingSlot)
	}
	draft.Provider = provider
	draft.Status = models.BookingStatusSelectingSlot
	return nil
}

func (uc *bookingUsecase) advanceSlot(ctx context.Context, draft *models.BookingDraft, request *requests.AdvanceDraft) error {
	if request.Date == "" || request.SlotID == "" {
		return exceptions.ErrDraftStepMismatch(fmt.Errorf("date and slot_id are required at step %s", draft.Status))
	}
	if _, err := time.Parse("2006-01-02", request.Date); err != nil {
		return exceptions.ErrCannotParseDate(err)
	}

	slot, err := uc.CatalogRepository.FindSlotByID(ctx, request.SlotID)
	if err != nil {
		return err
	}
	if slot.ProviderID != draft.Provider.ID || slot.Date != request.Date {
		return exceptions.ErrSlotUnavailable(fmt.Errorf("slot %s does not belong to provider %s on %s", slot.ID, draft.Provider.ID, request.Date))
	}
	if !slot.IsAvailable {
		return exceptions.ErrSlotUnavailable(fmt.Errorf("slot %s is fully booked", slot.ID))
	}

	if draft.Slot != nil && draft.Slot.ID != slot.ID {
		uc.releaseSlotLock(ctx, draft)
	}
	draft.Date = request.Date
	draft.Slot = slot
	draft.Status = models.BookingStatusEnteringPatientInfo
	return nil
}

func (uc *bookingUsecase) advancePatientInfo(ctx context.Context, draft *models.BookingDraft, request *requests.AdvanceDraft) error {
	if request.PatientInfo == nil {
		return exceptions.ErrDraftStepMismatch(fmt.Errorf("patient_info is required at step %s", draft.Status))
	}

	intake := request.PatientInfo
	draft.PatientInfo = &models.PatientInfo{
		Name:                  intake.Name,
		Age:                   intake.Age,
		Gender:                intake.Gender,
		Phone:                 intake.Phone,
		Email:                 intake.Email,
		EmergencyContactName:  intake.EmergencyContactName,
		EmergencyContactPhone: intake.EmergencyContactPhone,
		MedicalHistory:        intake.MedicalHistory,
		CurrentMedications:    intake.CurrentMedications,
		Allergies:             intake.Allergies,
		InsuranceProvider:     intake.InsuranceProvider,
		InsurancePolicyNumber: intake.InsurancePolicyNumber,
		ConsentToTreatment:    intake.ConsentToTreatment,
		ConsentToDataSharing:  intake.ConsentToDataSharing,
	}
	draft.Status = models.BookingStatusSelectingPayment
	return nil
}

func (uc *bookingUsecase) advancePayment(ctx context.Context, draft *models.BookingDraft, request *requests.AdvanceDraft) error {
	if request.Payment == nil {
		return exceptions.ErrPaymentMethodMissing(fmt.Errorf("payment selection is required at step %s", draft.Status))
	}

	choice, err := buildPaymentChoice(request.Payment)
	if err != nil {
		return err
	}

	method := choice.Method
	if method.RequiresGateway() && !uc.PaymentGateway.Configured() {
		return exceptions.ErrPaymentGatewayUnavailable(fmt.Errorf("method %s selected but no gateway is configured", method))
	}

	if err := uc.reserveSlot(ctx, draft); err != nil {
		return err
	}

	if !method.RequiresGateway() {
		draft.Payment = choice
		return uc.confirmDraft(ctx, draft)
	}

	transaction := &models.PaymentTransaction{
		OrderID:   utils.GenerateOrderID(),
		DraftID:   draft.ID,
		Status:    models.TransactionPending,
		Amount:    draft.Service.Price,
		Method:    method,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := uc.TransactionRepository.CreateTransaction(ctx, transaction); err != nil {
		uc.releaseSlotLock(ctx, draft)
		return err
	}

	choice.OrderID = transaction.OrderID
	choice.InFlight = true
	draft.Payment = choice
	draft.Status = models.BookingStatusProcessingPayment
	return nil
}

// buildPaymentChoice enforces the method union: exactly the details block
// matching the method, nothing else. Card numbers are reduced to their last
// four digits before the choice ever reaches storage.
func buildPaymentChoice(selection *requests.PaymentSelection) (*models.PaymentChoice, error) {
	method := models.PaymentMethodKind(selection.Method)
	switch method {
	case models.PaymentMethodCard:
		if selection.Card == nil {
			return nil, exceptions.ErrPaymentMethodMissing(fmt.Errorf("card details are required for method card"))
		}
		if selection.UpiID != "" {
			return nil, exceptions.ErrPaymentMethodMissing(fmt.Errorf("upi_id is not allowed for method card"))
		}
		number := utils.NormalizeCardNumber(selection.Card.Number)
		return &models.PaymentChoice{
			Method:    method,
			CardLast4: number[len(number)-4:],
		}, nil
	case models.PaymentMethodUPI:
		if selection.UpiID == "" {
			return nil, exceptions.ErrPaymentMethodMissing(fmt.Errorf("upi_id is required for method upi"))
		}
		if selection.Card != nil {
			return nil, exceptions.ErrPaymentMethodMissing(fmt.Errorf("card details are not allowed for method upi"))
		}
		return &models.PaymentChoice{
			Method: method,
			UpiID:  selection.UpiID,
		}, nil
	case models.PaymentMethodQR, models.PaymentMethodPayAtClinic:
		if selection.Card != nil || selection.UpiID != "" {
			return nil, exceptions.ErrPaymentMethodMissing(fmt.Errorf("method %s does not take payment details", method))
		}
		return &models.PaymentChoice{Method: method}, nil
	default:
		return nil, exceptions.ErrPaymentMethodMissing(fmt.Errorf("unknown payment method %q", selection.Method))
	}
}

// reserveSlot takes the redis reservation for the draft's slot. Losing the
// race here is the normal "slot just got taken" outcome, reported as a
// conflict so the client can pick another slot.
func (uc *bookingUsecase) reserveSlot(ctx context.Context, draft *models.BookingDraft) error {
	if draft.SlotLockValue != "" {
		return nil
	}

	lockKey := constvars.RedisSlotLockKeyPrefix + draft.Slot.ID
	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, uc.slotLockTTL())
	if err != nil {
		return err
	}
	if !acquired {
		return exceptions.ErrSlotLockNotAcquired(fmt.Errorf("slot %s is reserved by another draft", draft.Slot.ID))
	}
	draft.SlotLockValue = lockValue
	return nil
}

func (uc *bookingUsecase) releaseSlotLock(ctx context.Context, draft *models.BookingDraft) {
	if draft.SlotLockValue == "" || draft.Slot == nil {
		return
	}
	lockKey := constvars.RedisSlotLockKeyPrefix + draft.Slot.ID
	if err := uc.Locker.Unlock(ctx, lockKey, draft.SlotLockValue); err != nil {
		uc.Log.Warn("bookingUsecase.releaseSlotLock failed to release lock",
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.String(constvars.LoggingSlotIDKey, draft.Slot.ID),
			zap.Error(err),
		)
	}
	draft.SlotLockValue = ""
}

// confirmDraft finalizes a booking: the slot becomes booked, the draft gets
// its clinic reference and the confirmation event goes out. Used directly
// for pay at clinic and by the payment usecase once a gateway payment
// settles.
func (uc *bookingUsecase) confirmDraft(ctx context.Context, draft *models.BookingDraft) error {
	if err := uc.CatalogRepository.MarkSlotBooked(ctx, draft.Slot.ID); err != nil {
		return err
	}

	counter, err := uc.DraftRepository.NextBookingNumber(ctx)
	if err != nil {
		return err
	}
	draft.BookingID = utils.GenerateBookingID(uc.InternalConfig.Booking.IDPrefix, counter)
	draft.Status = models.BookingStatusConfirmed
	uc.releaseSlotLock(ctx, draft)

	if err := uc.Notification.PublishBookingConfirmed(ctx, draft.BookingID, draft.ID); err != nil {
		uc.Log.Warn("bookingUsecase.confirmDraft failed to publish confirmation event",
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.String(constvars.LoggingBookingIDKey, draft.BookingID),
			zap.Error(err),
		)
	}
	return nil
}

func (uc *bookingUsecase) Retreat(ctx context.Context, draftID string) (*responses.DraftView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Retreat called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	draft, err := uc.DraftRepository.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	// Retreating out of processing_payment drops the payment choice, so any
	// open transaction must be aborted before the choice is lost.
	heldPayment := draft.Payment
	wasProcessing := draft.Status == models.BookingStatusProcessingPayment
	if err := retreatDraft(draft); err != nil {
		return nil, err
	}
	if wasProcessing {
		uc.abortInFlightPayment(ctx, draft.ID, heldPayment)
	}

	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, err
	}
	return buildDraftView(draft), nil
}

func (uc *bookingUsecase) EditFrom(ctx context.Context, draftID string, request *requests.EditDraft) (*responses.DraftView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.EditFrom called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.String(constvars.LoggingStepKey, request.FromStep),
	)

	draft, err := uc.DraftRepository.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	// The edit clears the slot from the draft, so hold on to it for the
	// lock release afterwards.
	fromStep := models.BookingStatus(request.FromStep)
	heldSlot := draft.Slot
	heldLockValue := draft.SlotLockValue
	if err := editDraftFrom(draft, fromStep); err != nil {
		return nil, err
	}
	if slotCleared(fromStep) && heldSlot != nil && heldLockValue != "" {
		lockKey := constvars.RedisSlotLockKeyPrefix + heldSlot.ID
		if unlockErr := uc.Locker.Unlock(ctx, lockKey, heldLockValue); unlockErr != nil {
			uc.Log.Warn("bookingUsecase.EditFrom failed to release slot lock",
				zap.String(constvars.LoggingDraftIDKey, draft.ID),
				zap.String(constvars.LoggingSlotIDKey, heldSlot.ID),
				zap.Error(unlockErr),
			)
		}
		draft.SlotLockValue = ""
	}
	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, err
	}
	return buildDraftView(draft), nil
}

func (uc *bookingUsecase) Cancel(ctx context.Context, draftID string) (*responses.DraftView, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	draft, err := uc.DraftRepository.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	uc.releaseSlotLock(ctx, draft)
	if err := cancelDraft(draft); err != nil {
		return nil, err
	}
	uc.abortInFlightPayment(ctx, draft.ID, draft.Payment)

	if err := uc.DraftRepository.UpdateDraft(ctx, draft, uc.draftTTL()); err != nil {
		return nil, err
	}
	return buildDraftView(draft), nil
}

// abortInFlightPayment settles the open transaction behind the given payment
// choice as aborted. A gateway verdict arriving afterwards finds a settled
// transaction and is answered from stored state instead of rebooking.
func (uc *bookingUsecase) abortInFlightPayment(ctx context.Context, draftID string, payment *models.PaymentChoice) {
	if payment == nil || payment.OrderID == "" || !payment.InFlight {
		return
	}

	transaction, err := uc.TransactionRepository.FindByOrderID(ctx, payment.OrderID)
	if err != nil || transaction.Status.IsTerminal() {
		return
	}
	transaction.Status = models.TransactionAborted
	if _, err := uc.TransactionRepository.UpdateTransaction(ctx, transaction); err != nil {
		uc.Log.Warn("bookingUsecase.abortInFlightPayment failed to abort transaction",
			zap.String(constvars.LoggingDraftIDKey, draftID),
			zap.String(constvars.LoggingOrderIDKey, transaction.OrderID),
			zap.Error(err),
		)
	}
	payment.InFlight = false
}

func buildDraftView(draft *models.BookingDraft) *responses.DraftView {
	view := &responses.DraftView{
		DraftID:     draft.ID,
		Status:      string(draft.Status),
		Service:     draft.Service,
		Provider:    draft.Provider,
		Date:        draft.Date,
		Slot:        draft.Slot,
		PatientInfo: draft.PatientInfo,
		BookingID:   draft.BookingID,
	}
	if draft.Service != nil {
		view.TotalAmount = draft.Service.Price
	}
	if draft.Payment != nil {
		view.Payment = &responses.PaymentSummary{
			Method:     string(draft.Payment.Method),
			CardLast4:  draft.Payment.CardLast4,
			UpiID:      draft.Payment.UpiID,
			OrderID:    draft.Payment.OrderID,
			QRImageURL: draft.Payment.QRImageURL,
		}
	}
	return view
}
