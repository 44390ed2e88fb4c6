package orders

import (
	"aureliaskin_server/lib"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (orm *OrderRoutesManager) GetReceipt(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.receipt.missingOrderNumber"),
			gecho.Send(),
		)
		return
	}

	receipt, err := orm.receiptService.GetReceipt(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("error.receipt.orderNotFound"),
				gecho.Send(),
			)
			return
		}

		gecho.InternalServerError(w,
			gecho.WithMessage("error.receipt.lookupFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(receipt),
		gecho.Send(),
	)
}
