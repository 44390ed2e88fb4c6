package orders

import (
	"aureliaskin_server/lib"
	"aureliaskin_server/structs"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.PlaceOrderRequest](r)
	if err != nil {
		// Plain decode errors carry their detail in Error(), not in fields
		var details any = err
		var ve *lib.ValidationError
		if !errors.As(err, &ve) {
			details = map[string]string{"error": err.Error()}
		}
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(details),
			gecho.Send(),
		)
		return
	}

	result, err := orm.orderService.PlaceOrder(r.Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrProfileNotFound):
			gecho.NotFound(w,
				gecho.WithMessage("error.order.profileNotFound"),
				gecho.Send(),
			)
		case errors.Is(err, lib.ErrCartNotFound):
			gecho.NotFound(w,
				gecho.WithMessage("error.order.cartNotFound"),
				gecho.Send(),
			)
		case errors.Is(err, lib.ErrInsufficientStock):
			gecho.Conflict(w,
				gecho.WithMessage("error.order.insufficientStock"),
				gecho.Send(),
			)
		default:
			gecho.InternalServerError(w,
				gecho.WithMessage("error.order.creationFailed"),
				gecho.Send(),
			)
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.created"),
		gecho.WithData(result),
		gecho.Send(),
	)
}
