package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/delivery"
	"github.com/ghostart/goapi/base/metrics"
	"github.com/ghostart/goapi/domain"
	"github.com/ghostart/goapi/domain/nft"
	"github.com/ghostart/goapi/middleware"
	adminMiddleware "github.com/ghostart/goapi/stores/admin/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	nft nft.Usecase
}

// New registers the marketplace routes. GET /api/nfts and /api/stats are
// served through the response cache when cacheTTL is positive.
func New(e *echo.Echo, uc nft.Usecase, admin *adminMiddleware.AdminMiddleware, cacheTTL time.Duration) {
	met = metrics.New("nft")

	h := &handler{nft: uc}

	var cached []echo.MiddlewareFunc
	if cacheTTL > 0 {
		cached = append(cached, middleware.CacheHttp(cacheTTL, uc.Revision))
	}

	api := e.Group("/api")

	api.GET("/nfts", h.getPublic, cached...)

	api.GET("/nfts/:id", h.get)

	api.GET("/nfts/owner/:address", h.getByOwner, middleware.IsValidAddress("address"))

	api.POST("/nfts/list", h.list)

	api.POST("/nfts/mint", h.mint)

	api.GET("/stats", h.getStats, cached...)

	g := api.Group("/admin", admin.IsAdmin())

	g.GET("/pending", h.getPending)

	g.POST("/approve/:id", h.approve)

	g.PUT("/nfts/:id", h.update)

	g.DELETE("/nfts/:id", h.delete)

	g.GET("/approvals", h.getApprovals)
}

// unknownId matches no record
const unknownId = -1

// looseId accepts a JSON number or string and reads its integer prefix, so
// "7", 7 and "7th" all name record 7. Zero and empty values count as missing.
type looseId int64

func (l *looseId) UnmarshalJSON(b []byte) error {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*l = 0
	case bool:
		*l = unknownId
		if !t {
			*l = 0
		}
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			*l = 0
			return nil
		}
		*l = looseId(leadingIdOr(t.String(), unknownId))
	case string:
		*l = 0
		if t != "" {
			*l = looseId(leadingIdOr(t, unknownId))
		}
	default:
		*l = unknownId
	}
	return nil
}

type listPayload struct {
	NftId looseId         `json:"nftId"`
	Owner domain.Address  `json:"owner"`
	Price decimal.Decimal `json:"wldPrice"`
}

func (p listPayload) toParams() nft.ListParams {
	return nft.ListParams{NftId: int64(p.NftId), Owner: p.Owner, Price: p.Price}
}

// parseLeadingInt reads the integer prefix of s after leading spaces,
// e.g. "2abc" -> 2. ok is false when there is no digit.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// leadingIdOr returns the positive id prefix of s, or def
func leadingIdOr(s string, def int64) int64 {
	if id, ok := parseLeadingInt(s); ok && id > 0 {
		return id
	}
	return def
}

// parseId resolves the :id path param. Ids without a positive integer prefix
// are reported as not found.
func parseId(c echo.Context) (int64, error) {
	id := leadingIdOr(c.Param("id"), unknownId)
	if id == unknownId {
		return 0, domain.ErrNftNotFound
	}
	return id, nil
}

// getPublic
//
//	@Summary		List marketplace NFTs
//	@Description	Approved and listed NFTs, served from the response cache
//	@Tags			nfts
//	@Produce		json
//	@Success		200	{object}	delivery.JsonResponse{data=[]nft.NftRecord}
//	@Failure		500
//	@Router			/api/nfts [get]
func (h *handler) getPublic(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.nft.ListPublic(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("nft.ListPublic failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res, delivery.WithCount(len(res)))
}

// get
//
//	@Summary	Get an NFT
//	@Tags		nfts
//	@Produce	json
//	@Param		id	path		int	true	"nft id"	example(1)
//	@Success	200	{object}	delivery.JsonResponse{data=nft.NftRecord}
//	@Failure	404	{object}	delivery.JsonResponse
//	@Router		/api/nfts/{id} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}

	res, err := h.nft.GetById(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getByOwner
//
//	@Summary	List NFTs of a wallet
//	@Tags		nfts
//	@Produce	json
//	@Param		address	path		string	true	"owner wallet"	example(0x32f1e35291967c07ec02aa81394dbf87d1d25e52)
//	@Success	200		{object}	delivery.JsonResponse{data=[]nft.NftRecord}
//	@Failure	400		{object}	delivery.JsonResponse
//	@Router		/api/nfts/owner/{address} [get]
func (h *handler) getByOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.nft.ListByOwner(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res, delivery.WithCount(len(res)))
}

// list
//
//	@Summary		List an owned NFT for sale
//	@Description	The NFT leaves the catalog until an admin approves it again
//	@Tags			nfts
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.listPayload	true	"params"
//	@Success		200		{object}	delivery.JsonResponse{data=nft.NftRecord}
//	@Failure		400		{object}	delivery.JsonResponse
//	@Failure		403		{object}	delivery.JsonResponse
//	@Failure		404		{object}	delivery.JsonResponse
//	@Router			/api/nfts/list [post]
func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := listPayload{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("bind list payload failed")
		return delivery.MakeJsonResp(c, 0, domain.ErrInvalidBody)
	}

	res, err := h.nft.List(ctx, p.toParams())
	if err != nil {
		met.BumpSum("list.err", 1, "status", strconv.Itoa(delivery.StatusOf(err)))
		return delivery.MakeJsonResp(c, 0, err)
	}
	met.BumpSum("list", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, res, delivery.WithMessage("NFT listed for marketplace approval"))
}

// mint
//
//	@Summary	Mint a new NFT
//	@Tags		nfts
//	@Accept		json
//	@Produce	json
//	@Param		params	body		nft.MintParams	true	"params"
//	@Success	201		{object}	delivery.JsonResponse{data=nft.NftRecord}
//	@Failure	400		{object}	delivery.JsonResponse
//	@Router		/api/nfts/mint [post]
func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := nft.MintParams{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("bind mint payload failed")
		return delivery.MakeJsonResp(c, 0, domain.ErrInvalidBody)
	}

	res, err := h.nft.Mint(ctx, p)
	if err != nil {
		met.BumpSum("mint.err", 1, "status", strconv.Itoa(delivery.StatusOf(err)))
		return delivery.MakeJsonResp(c, 0, err)
	}
	met.BumpSum("mint", 1)
	return delivery.MakeJsonResp(c, http.StatusCreated, res, delivery.WithMessage("NFT minted successfully, pending admin approval"))
}

// getStats
//
//	@Summary	Marketplace stats
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	delivery.JsonResponse{data=nft.Stats}
//	@Failure	500
//	@Router		/api/stats [get]
func (h *handler) getStats(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.nft.Stats(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getPending
//
//	@Summary	List NFTs awaiting approval
//	@Tags		admin
//	@Security	ApiKeyAuth
//	@Produce	json
//	@Success	200	{object}	delivery.JsonResponse{data=[]nft.NftRecord}
//	@Failure	401	{object}	delivery.JsonResponse
//	@Failure	403	{object}	delivery.JsonResponse
//	@Router		/api/admin/pending [get]
func (h *handler) getPending(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.nft.ListPending(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res, delivery.WithCount(len(res)))
}

// approve
//
//	@Summary	Approve an NFT for the marketplace
//	@Tags		admin
//	@Security	ApiKeyAuth
//	@Produce	json
//	@Param		id	path		int	true	"nft id"	example(1)
//	@Success	200	{object}	delivery.JsonResponse{data=nft.NftRecord}
//	@Failure	401	{object}	delivery.JsonResponse
//	@Failure	403	{object}	delivery.JsonResponse
//	@Failure	404	{object}	delivery.JsonResponse
//	@Router		/api/admin/approve/{id} [post]
func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}

	res, err := h.nft.Approve(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	met.BumpSum("approve", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, res, delivery.WithMessage(fmt.Sprintf("NFT \"%s\" approved for marketplace", res.Name)))
}

// update
//
//	@Summary		Edit an NFT
//	@Description	Only non-empty fields are applied
//	@Tags			admin
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int			true	"nft id"	example(1)
//	@Param			params	body		nft.Patch	true	"params"
//	@Success		200		{object}	delivery.JsonResponse{data=nft.NftRecord}
//	@Failure		400		{object}	delivery.JsonResponse
//	@Failure		401		{object}	delivery.JsonResponse
//	@Failure		403		{object}	delivery.JsonResponse
//	@Failure		404		{object}	delivery.JsonResponse
//	@Router			/api/admin/nfts/{id} [put]
func (h *handler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}

	patch := nft.Patch{}
	if err := c.Bind(&patch); err != nil {
		ctx.WithField("err", err).Warn("bind patch failed")
		return delivery.MakeJsonResp(c, 0, domain.ErrInvalidBody)
	}

	res, err := h.nft.Update(ctx, id, patch)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res, delivery.WithMessage("NFT updated successfully"))
}

// delete
//
//	@Summary	Remove an NFT
//	@Tags		admin
//	@Security	ApiKeyAuth
//	@Produce	json
//	@Param		id	path		int	true	"nft id"	example(1)
//	@Success	200	{object}	delivery.JsonResponse{data=nft.NftRecord}
//	@Failure	401	{object}	delivery.JsonResponse
//	@Failure	403	{object}	delivery.JsonResponse
//	@Failure	404	{object}	delivery.JsonResponse
//	@Router		/api/admin/nfts/{id} [delete]
func (h *handler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}

	res, err := h.nft.Delete(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res, delivery.WithMessage(fmt.Sprintf("NFT \"%s\" removed", res.Name)))
}

// getApprovals
//
//	@Summary	List pending approval entries
//	@Tags		admin
//	@Security	ApiKeyAuth
//	@Produce	json
//	@Success	200	{object}	delivery.JsonResponse{data=[]nft.PendingEntry}
//	@Failure	401	{object}	delivery.JsonResponse
//	@Failure	403	{object}	delivery.JsonResponse
//	@Router		/api/admin/approvals [get]
func (h *handler) getApprovals(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.nft.Approvals(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res, delivery.WithCount(len(res)))
}
