package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ledger es el libro de existencias: el único camino de escritura sobre los
// saldos por material+ubicación. Mantiene los invariantes (cantidad nunca
// negativa, una fila por pareja) y aplica las mutaciones multi-paso de forma
// atómica con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// El ledger es sin estado: las operaciones públicas abren su propia
// transacción vía TxRunner; las variantes *InTx operan sobre los repositorios
// de una transacción ya abierta por el caso de uso llamador.
type Ledger struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository // lecturas fuera de transacción
}

// NewLedger construye el ledger.
func NewLedger(txRunner TxRunner, stockRepo repository.StockRepository) *Ledger {
	return &Ledger{txRunner: txRunner, stockRepo: stockRepo}
}

// MovementInput entrada para Increase/Decrease/Adjust.
type MovementInput struct {
	MaterialID  string
	LocationID  string
	Quantity    int    // > 0 para increase/decrease; delta firmado en Adjust
	Reference   string // ID del documento disparador (compra, renglón, etc.)
	Note        string
	Actor       string
	BatchNumber string     // solo entradas: etiqueta de lote para el saldo
	ExpiryDate  *time.Time // solo entradas: vencimiento del lote
}

// TransferInput entrada para Transfer.
type TransferInput struct {
	MaterialID     string
	FromLocationID string
	ToLocationID   string
	Quantity       int // > 0
	Reference      string
	Note           string
	Actor          string
}

// GetBalance devuelve el saldo actual de la pareja material+ubicación.
// Sin fila registrada devuelve un saldo en cero (nunca nil). Sin efectos.
func (l *Ledger) GetBalance(materialID, locationID string) (*entity.StockBalance, error) {
	bal, err := l.stockRepo.Get(materialID, locationID)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return &entity.StockBalance{MaterialID: materialID, LocationID: locationID}, nil
	}
	return bal, nil
}

// Increase suma cantidad al saldo de la pareja, creando la fila si no existe.
// Siempre exitoso para cantidades válidas (sin tope superior).
func (l *Ledger) Increase(ctx context.Context, in MovementInput) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return l.txRunner.Run(ctx, func(r Repos) error {
		return l.IncreaseInTx(r, in, time.Now())
	})
}

// Decrease resta cantidad del saldo; falla con ErrInsufficientStock si no hay
// fila o la cantidad excede lo existente. Nunca aplica deducciones parciales.
func (l *Ledger) Decrease(ctx context.Context, in MovementInput) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return l.txRunner.Run(ctx, func(r Repos) error {
		return l.DecreaseInTx(r, in, time.Now())
	})
}

// Transfer mueve cantidad entre dos ubicaciones de forma atómica: ambos lados
// se aplican o ninguno. La disponibilidad del origen se relee al momento de
// ejecutar, no al de solicitar.
func (l *Ledger) Transfer(ctx context.Context, in TransferInput) error {
	return l.txRunner.Run(ctx, func(r Repos) error {
		return l.TransferInTx(r, in, time.Now())
	})
}

// IncreaseInTx aplica una entrada dentro de la transacción del caller.
func (l *Ledger) IncreaseInTx(r Repos, in MovementInput, now time.Time) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	bal, err := r.Stock.GetForUpdate(in.MaterialID, in.LocationID)
	if err != nil {
		return err
	}
	if bal == nil {
		bal = &entity.StockBalance{
			MaterialID: in.MaterialID,
			LocationID: in.LocationID,
			Condition:  entity.ConditionGood,
			CreatedAt:  now,
		}
	}
	bal.Quantity += in.Quantity
	bal.UpdatedAt = now
	if in.BatchNumber != "" {
		bal.BatchNumber = in.BatchNumber
	}
	if in.ExpiryDate != nil {
		bal.ExpiryDate = in.ExpiryDate
	}
	appendNote(bal, now, in.Quantity, in.Note)
	if err := r.Stock.Upsert(bal); err != nil {
		return err
	}
	return l.recordMovement(r, in, entity.MovementTypeIN, in.Quantity, now)
}

// DecreaseInTx aplica una salida dentro de la transacción del caller.
func (l *Ledger) DecreaseInTx(r Repos, in MovementInput, now time.Time) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	bal, err := r.Stock.GetForUpdate(in.MaterialID, in.LocationID)
	if err != nil {
		return err
	}
	if bal == nil || bal.Quantity < in.Quantity {
		return domain.ErrInsufficientStock
	}
	bal.Quantity -= in.Quantity
	bal.UpdatedAt = now
	appendNote(bal, now, -in.Quantity, in.Note)
	if err := r.Stock.Upsert(bal); err != nil {
		return err
	}
	return l.recordMovement(r, in, entity.MovementTypeOUT, -in.Quantity, now)
}

// AdjustInTx aplica un delta firmado (ajuste por inventario físico) dentro de
// la transacción del caller. Un delta negativo exige existencia suficiente.
func (l *Ledger) AdjustInTx(r Repos, in MovementInput, now time.Time) error {
	if in.Quantity == 0 {
		return domain.ErrInvalidQuantity
	}
	bal, err := r.Stock.GetForUpdate(in.MaterialID, in.LocationID)
	if err != nil {
		return err
	}
	if bal == nil {
		if in.Quantity < 0 {
			return domain.ErrInsufficientStock
		}
		bal = &entity.StockBalance{
			MaterialID: in.MaterialID,
			LocationID: in.LocationID,
			Condition:  entity.ConditionGood,
			CreatedAt:  now,
		}
	}
	if bal.Quantity+in.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	bal.Quantity += in.Quantity
	bal.UpdatedAt = now
	appendNote(bal, now, in.Quantity, in.Note)
	if err := r.Stock.Upsert(bal); err != nil {
		return err
	}
	return l.recordMovement(r, in, entity.MovementTypeADJUSTMENT, in.Quantity, now)
}

// TransferInTx aplica un traslado dentro de la transacción del caller:
// bloquea la fila origen, verifica disponibilidad contra la lectura fresca,
// resta del origen y suma en destino (creándolo con la condición, lote y
// vencimiento del origen si no existe). Dos registros de auditoría, mismo
// Reference.
func (l *Ledger) TransferInTx(r Repos, in TransferInput, now time.Time) error {
	if in.FromLocationID == in.ToLocationID {
		return domain.ErrSameLocation
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	origin, err := r.Stock.GetForUpdate(in.MaterialID, in.FromLocationID)
	if err != nil {
		return err
	}
	if origin == nil || origin.Available() < in.Quantity {
		return domain.ErrInsufficientStock
	}
	dest, err := r.Stock.GetForUpdate(in.MaterialID, in.ToLocationID)
	if err != nil {
		return err
	}
	if dest == nil {
		dest = &entity.StockBalance{
			MaterialID:  in.MaterialID,
			LocationID:  in.ToLocationID,
			Condition:   origin.Condition,
			BatchNumber: origin.BatchNumber,
			ExpiryDate:  origin.ExpiryDate,
			CreatedAt:   now,
		}
	}
	origin.Quantity -= in.Quantity
	dest.Quantity += in.Quantity
	origin.UpdatedAt = now
	dest.UpdatedAt = now
	appendNote(origin, now, -in.Quantity, in.Note)
	appendNote(dest, now, in.Quantity, in.Note)
	if err := r.Stock.Upsert(origin); err != nil {
		return err
	}
	if err := r.Stock.Upsert(dest); err != nil {
		return err
	}
	outIn := MovementInput{MaterialID: in.MaterialID, LocationID: in.FromLocationID, Reference: in.Reference, Note: in.Note, Actor: in.Actor}
	if err := l.recordMovement(r, outIn, entity.MovementTypeTRANSFER, -in.Quantity, now); err != nil {
		return err
	}
	inMov := MovementInput{MaterialID: in.MaterialID, LocationID: in.ToLocationID, Reference: in.Reference, Note: in.Note, Actor: in.Actor}
	return l.recordMovement(r, inMov, entity.MovementTypeTRANSFER, in.Quantity, now)
}

// DeleteBalance elimina administrativamente un saldo; solo se permite en cero.
func (l *Ledger) DeleteBalance(ctx context.Context, materialID, locationID string) error {
	return l.txRunner.Run(ctx, func(r Repos) error {
		bal, err := r.Stock.GetForUpdate(materialID, locationID)
		if err != nil {
			return err
		}
		if bal == nil {
			return domain.ErrNotFound
		}
		if bal.Quantity != 0 {
			return domain.ErrBalanceNotEmpty
		}
		return r.Stock.Delete(materialID, locationID)
	})
}

func (l *Ledger) recordMovement(r Repos, in MovementInput, movType string, signedQty int, now time.Time) error {
	return r.Movements.Create(&entity.StockMovement{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		LocationID: in.LocationID,
		Type:       movType,
		Quantity:   signedQty,
		Reference:  in.Reference,
		Notes:      in.Note,
		CreatedAt:  now,
		CreatedBy:  in.Actor,
	})
}

// appendNote agrega una línea fechada a la bitácora del saldo si hay nota.
func appendNote(bal *entity.StockBalance, now time.Time, delta int, note string) {
	if note == "" {
		return
	}
	line := fmt.Sprintf("[%s] %+d: %s", now.Format("2006-01-02"), delta, note)
	if bal.Notes == "" {
		bal.Notes = line
		return
	}
	bal.Notes = bal.Notes + "\n" + line
}
