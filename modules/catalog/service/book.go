package service

import (
	"context"
	"fmt"

	"libreria/modules/catalog/dto"
	"libreria/modules/catalog/external"
	"libreria/modules/catalog/model"
	"libreria/modules/catalog/repository"
	"libreria/util/errs"
	"libreria/util/logger"
	"libreria/util/storage/sqldb/transactor"
)

// initial stock assigned to books that arrive through a catalog sync
const defaultInitialStock = 5

var ErrNegativeStock = errs.BusinessRuleError("La cantidad de stock no puede ser negativa")

type BookService interface {
	SyncFromExternalAPI(ctx context.Context) (int, error)
	ListBooks(ctx context.Context) ([]*dto.BookResponse, error)
	GetByExternalID(ctx context.Context, externalID int64) (*dto.BookResponse, error)
	UpdateStock(ctx context.Context, externalID int64, stockQuantity int) (*dto.BookResponse, error)
	IsExternalAPIAvailable(ctx context.Context) bool
}

type bookService struct {
	transactor transactor.Transactor
	bookRepo   repository.BookRepository
	catalogAPI external.Client
}

func NewBookService(transactor transactor.Transactor, bookRepo repository.BookRepository, catalogAPI external.Client) BookService {
	return &bookService{
		transactor: transactor,
		bookRepo:   bookRepo,
		catalogAPI: catalogAPI,
	}
}

func (s *bookService) SyncFromExternalAPI(ctx context.Context) (int, error) {
	books, err := s.catalogAPI.FetchBooks(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return 0, err
	}

	synced := 0
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, _ func(transactor.PostCommitHook)) error {
		for _, b := range books {
			book := model.NewBook(b.ID, b.Title, b.Price.Round(2), defaultInitialStock)
			if err := s.bookRepo.Upsert(ctx, book); err != nil {
				logger.FromContext(ctx).Error(err.Error())
				return err
			}
			synced++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Info(fmt.Sprintf("synced %d books from the external catalog", synced))
	return synced, nil
}

func (s *bookService) ListBooks(ctx context.Context) ([]*dto.BookResponse, error) {
	books, err := s.bookRepo.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	return dto.NewBookResponses(books), nil
}

func (s *bookService) GetByExternalID(ctx context.Context, externalID int64) (*dto.BookResponse, error) {
	book, err := s.bookRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	if book == nil {
		return nil, errs.ResourceNotFoundError(fmt.Sprintf("Libro no encontrado con ID externo: %d", externalID))
	}
	return dto.NewBookResponse(book), nil
}

func (s *bookService) UpdateStock(ctx context.Context, externalID int64, stockQuantity int) (*dto.BookResponse, error) {
	if stockQuantity < 0 {
		return nil, ErrNegativeStock
	}

	var book *model.Book
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, _ func(transactor.PostCommitHook)) error {
		var err error
		book, err = s.bookRepo.FindByExternalIDForUpdate(ctx, externalID)
		if err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}
		if book == nil {
			return errs.ResourceNotFoundError(fmt.Sprintf("Libro no encontrado con ID externo: %d", externalID))
		}

		book.SetStock(stockQuantity)

		if err := s.bookRepo.UpdateStock(ctx, book); err != nil {
			logger.FromContext(ctx).Error(err.Error())
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewBookResponse(book), nil
}

func (s *bookService) IsExternalAPIAvailable(ctx context.Context) bool {
	return s.catalogAPI.Available(ctx)
}
