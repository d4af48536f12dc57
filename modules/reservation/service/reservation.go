package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	bookRepo "libreria/modules/catalog/repository"
	"libreria/modules/reservation/dto"
	"libreria/modules/reservation/model"
	"libreria/modules/reservation/repository"
	userModel "libreria/modules/user/model"
	"libreria/util/errs"
	"libreria/util/logger"
	"libreria/util/storage/sqldb/transactor"
)

var (
	ErrDuplicateActiveReservation = errs.ConflictError("El usuario ya tiene una reserva activa para este libro")
	ErrAlreadyReturned            = errs.ConflictError("La reserva ya fue devuelta")
	ErrBookNotFound               = errs.ResourceNotFoundError("Libro no encontrado")
	ErrReservationNotFound        = errs.ResourceNotFoundError("Reserva no encontrada")
)

// UserDirectory is the slice of the user module this service needs. The
// legacy split between "view" and "entity" lookups is collapsed into one.
type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*userModel.User, error)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, req *dto.ReservationRequest) (*dto.ReservationResponse, error)
	ReturnBook(ctx context.Context, reservationID int64, req *dto.ReturnBookRequest) (*dto.ReservationResponse, error)
	GetReservationByID(ctx context.Context, id int64) (*dto.ReservationResponse, error)
	ListReservations(ctx context.Context) ([]*dto.ReservationResponse, error)
	ListReservationsByUser(ctx context.Context, userID int64) ([]*dto.ReservationResponse, error)
	ListActiveReservations(ctx context.Context) ([]*dto.ReservationResponse, error)
	ListOverdueReservations(ctx context.Context) ([]*dto.ReservationResponse, error)
	GetUserPendingLateFees(ctx context.Context, userID int64) (decimal.Decimal, error)
	IsBookAvailable(ctx context.Context, bookExternalID int64) (bool, error)
	FinalTotal(ctx context.Context, reservationID int64) (decimal.Decimal, error)
}

type reservationService struct {
	transactor transactor.Transactor
	resvRepo   repository.ReservationRepository
	bookRepo   bookRepo.BookRepository
	userDir    UserDirectory
	now        func() time.Time
}

func NewReservationService(
	transactor transactor.Transactor,
	resvRepo repository.ReservationRepository,
	bookRepo bookRepo.BookRepository,
	userDir UserDirectory,
) ReservationService {
	return &reservationService{
		transactor: transactor,
		resvRepo:   resvRepo,
		bookRepo:   bookRepo,
		userDir:    userDir,
		now:        time.Now,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, req *dto.ReservationRequest) (*dto.ReservationResponse, error) {
	logger.FromContext(ctx).Info(fmt.Sprintf("Creando reserva para usuario: %d, libro: %d", req.UserID, req.BookExternalID))

	user, err := s.userDir.FindByID(ctx, req.UserID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	if user == nil {
		return nil, errs.ResourceNotFoundError(fmt.Sprintf("Usuario no encontrado con ID: %d", req.UserID))
	}

	var (
		reservation *model.Reservation
		bookTitle   string
	)
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, _ func(transactor.PostCommitHook)) error {
		// lock the book row: it is the contention point for stock and the
		// duplicate-active predicate for this (user, book) pair
		book, err := s.bookRepo.FindByExternalIDForUpdate(ctx, req.BookExternalID)
		if err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}
		if book == nil {
			return errs.ResourceNotFoundError(fmt.Sprintf("Libro no encontrado con ID externo: %d", req.BookExternalID))
		}

		if book.AvailableQuantity <= 0 {
			return errs.BusinessRuleError(fmt.Sprintf("Libro no disponible. Stock actual: %d", book.AvailableQuantity))
		}

		exists, err := s.resvRepo.ExistsActive(ctx, req.UserID, req.BookExternalID)
		if err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}
		if exists {
			return ErrDuplicateActiveReservation
		}

		reservation = model.NewReservation(req.UserID, req.BookExternalID, req.RentalDays, req.StartDateValue(), book.Price)
		bookTitle = book.Title

		if err := s.resvRepo.Insert(ctx, reservation); err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}

		decremented, err := s.bookRepo.DecrementAvailable(ctx, book.ExternalID)
		if err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}
		if !decremented {
			return errs.BusinessRuleError("Libro no disponible. Stock actual: 0")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(fmt.Sprintf("Reserva creada exitosamente con ID: %d", reservation.ID))
	return dto.NewReservationResponse(reservation, user.Name, bookTitle), nil
}

func (s *reservationService) ReturnBook(ctx context.Context, reservationID int64, req *dto.ReturnBookRequest) (*dto.ReservationResponse, error) {
	logger.FromContext(ctx).Info(fmt.Sprintf("Procesando devolución para reserva ID: %d", reservationID))

	var (
		reservation *model.Reservation
		bookTitle   string
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, _ func(transactor.PostCommitHook)) error {
		var err error
		reservation, err = s.resvRepo.FindByID(ctx, reservationID)
		if err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}
		if reservation == nil {
			return errs.ResourceNotFoundError(fmt.Sprintf("Reserva no encontrada con ID: %d", reservationID))
		}

		if !reservation.IsActive() {
			return ErrAlreadyReturned
		}

		book, err := s.bookRepo.FindByExternalIDForUpdate(ctx, reservation.BookExternalID)
		if err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}
		if book == nil {
			return ErrBookNotFound
		}
		bookTitle = book.Title

		reservation.MarkReturned(req.ReturnDateValue(), book.Price)

		if reservation.LateFee.Valid && reservation.LateFee.Decimal.IsPositive() {
			daysLate := model.DaysBetween(reservation.ExpectedReturnDate, *reservation.ActualReturnDate)
			logger.FromContext(ctx).Info(fmt.Sprintf("Multa aplicada por %d días de demora: $%s", daysLate, reservation.LateFee.Decimal))
		}

		if err := s.resvRepo.Update(ctx, reservation); err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}

		if err := s.bookRepo.IncrementAvailable(ctx, book.ExternalID); err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	userName, err := s.resolveUserName(ctx, reservation.UserID)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(fmt.Sprintf("Devolución procesada exitosamente para reserva ID: %d", reservationID))
	return dto.NewReservationResponse(reservation, userName, bookTitle), nil
}

func (s *reservationService) GetReservationByID(ctx context.Context, id int64) (*dto.ReservationResponse, error) {
	reservation, err := s.resvRepo.FindByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	if reservation == nil {
		return nil, errs.ResourceNotFoundError(fmt.Sprintf("Reserva no encontrada con ID: %d", id))
	}
	return s.toResponse(ctx, reservation)
}

func (s *reservationService) ListReservations(ctx context.Context) ([]*dto.ReservationResponse, error) {
	reservations, err := s.resvRepo.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	return s.toResponses(ctx, reservations)
}

func (s *reservationService) ListReservationsByUser(ctx context.Context, userID int64) ([]*dto.ReservationResponse, error) {
	reservations, err := s.resvRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	return s.toResponses(ctx, reservations)
}

func (s *reservationService) ListActiveReservations(ctx context.Context) ([]*dto.ReservationResponse, error) {
	reservations, err := s.resvRepo.FindActive(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	return s.toResponses(ctx, reservations)
}

func (s *reservationService) ListOverdueReservations(ctx context.Context) ([]*dto.ReservationResponse, error) {
	reservations, err := s.resvRepo.FindOverdue(ctx, s.now())
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	return s.toResponses(ctx, reservations)
}

// GetUserPendingLateFees sums every positive late fee the user has accrued,
// returned reservations included: there is no payment subsystem, so nothing
// is ever settled.
func (s *reservationService) GetUserPendingLateFees(ctx context.Context, userID int64) (decimal.Decimal, error) {
	reservations, err := s.resvRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range reservations {
		if r.LateFee.Valid && r.LateFee.Decimal.IsPositive() {
			total = total.Add(r.LateFee.Decimal)
		}
	}
	return total, nil
}

// IsBookAvailable compares stock against the live count of active
// reservations. It is a read-only oracle: a concurrently committing
// transaction may disagree with its answer.
func (s *reservationService) IsBookAvailable(ctx context.Context, bookExternalID int64) (bool, error) {
	book, err := s.bookRepo.FindByExternalID(ctx, bookExternalID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return false, err
	}
	if book == nil {
		return false, ErrBookNotFound
	}

	activeReservations, err := s.resvRepo.CountActiveByBook(ctx, bookExternalID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return false, err
	}

	return int64(book.AvailableQuantity) > activeReservations, nil
}

func (s *reservationService) FinalTotal(ctx context.Context, reservationID int64) (decimal.Decimal, error) {
	reservation, err := s.resvRepo.FindByID(ctx, reservationID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return decimal.Zero, err
	}
	if reservation == nil {
		return decimal.Zero, ErrReservationNotFound
	}
	return reservation.FinalTotal(), nil
}

func (s *reservationService) toResponse(ctx context.Context, r *model.Reservation) (*dto.ReservationResponse, error) {
	userName, err := s.resolveUserName(ctx, r.UserID)
	if err != nil {
		return nil, err
	}
	bookTitle, err := s.resolveBookTitle(ctx, r.BookExternalID)
	if err != nil {
		return nil, err
	}
	return dto.NewReservationResponse(r, userName, bookTitle), nil
}

func (s *reservationService) toResponses(ctx context.Context, reservations []model.Reservation) ([]*dto.ReservationResponse, error) {
	// names and titles repeat across rows; memoize the lookups per call
	userNames := map[int64]string{}
	bookTitles := map[int64]string{}

	resp := make([]*dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]

		userName, ok := userNames[r.UserID]
		if !ok {
			var err error
			userName, err = s.resolveUserName(ctx, r.UserID)
			if err != nil {
				return nil, err
			}
			userNames[r.UserID] = userName
		}

		bookTitle, ok := bookTitles[r.BookExternalID]
		if !ok {
			var err error
			bookTitle, err = s.resolveBookTitle(ctx, r.BookExternalID)
			if err != nil {
				return nil, err
			}
			bookTitles[r.BookExternalID] = bookTitle
		}

		resp = append(resp, dto.NewReservationResponse(r, userName, bookTitle))
	}
	return resp, nil
}

func (s *reservationService) resolveUserName(ctx context.Context, userID int64) (string, error) {
	user, err := s.userDir.FindByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.Name, nil
}

func (s *reservationService) resolveBookTitle(ctx context.Context, bookExternalID int64) (string, error) {
	book, err := s.bookRepo.FindByExternalID(ctx, bookExternalID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return "", err
	}
	if book == nil {
		return "", nil
	}
	return book.Title, nil
}
