package nft

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/ptr"
	"github.com/ghostart/goapi/domain"
)

func init() {
	// prices go over the wire as JSON numbers, e.g. "wldPrice": 2.5
	decimal.MarshalJSONWithoutQuotes = true
}

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

type PendingAction string

const (
	PendingActionMint PendingAction = "mint"
	PendingActionList PendingAction = "list"
)

const DefaultCreator = "User"

// NftRecord is a catalog entry. It is public iff Approved && Listed.
type NftRecord struct {
	Id              int64           `json:"id" bson:"id"`
	Name            string          `json:"name" bson:"name"`
	Creator         string          `json:"creator" bson:"creator"`
	Image           string          `json:"image" bson:"image"`
	Price           decimal.Decimal `json:"wldPrice" bson:"-"`
	Rarity          Rarity          `json:"rarity" bson:"rarity"`
	Traits          []string        `json:"traits" bson:"traits"`
	Owner           *domain.Address `json:"owner" bson:"owner"`
	Approved        bool            `json:"approved" bson:"approved"`
	Listed          bool            `json:"listed" bson:"listed"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	ContractAddress domain.Address  `json:"contractAddress,omitempty" bson:"contractAddress,omitempty"`
	Royalty         int             `json:"royalty,omitempty" bson:"royalty,omitempty"`
}

// IsPublic reports whether the record shows up in the public catalog
func (n *NftRecord) IsPublic() bool {
	return n.Approved && n.Listed
}

// IsOwnedBy compares owners case-insensitively. Unowned records belong to nobody.
func (n *NftRecord) IsOwnedBy(address domain.Address) bool {
	return n.Owner != nil && n.Owner.Equals(address)
}

// Clone returns a deep copy so callers never share state with a repository
func (n *NftRecord) Clone() *NftRecord {
	c := *n
	c.Traits = append([]string{}, n.Traits...)
	if n.Owner != nil {
		owner := *n.Owner
		c.Owner = &owner
	}
	return &c
}

// PendingEntry marks an NFT awaiting an admin decision
type PendingEntry struct {
	Id        string          `json:"id" bson:"id"`
	NftId     int64           `json:"nftId" bson:"nftId"`
	Action    PendingAction   `json:"action" bson:"action"`
	Owner     *domain.Address `json:"owner,omitempty" bson:"owner,omitempty"`
	Timestamp time.Time       `json:"timestamp" bson:"timestamp"`
}

type Stats struct {
	TotalNFTs        int            `json:"totalNFTs"`
	ApprovedNFTs     int            `json:"approvedNFTs"`
	ListedNFTs       int            `json:"listedNFTs"`
	PendingApprovals int            `json:"pendingApprovals"`
	TotalMarketValue string         `json:"totalMarketValue"`
	CreatorAddress   domain.Address `json:"creatorAddress"`
	CreatorRoyalty   string         `json:"creatorRoyalty"`
}

type MintParams struct {
	Name    string          `json:"name" validate:"required"`
	Image   string          `json:"image" validate:"required"`
	Price   decimal.Decimal `json:"wldPrice"`
	Rarity  Rarity          `json:"rarity" validate:"omitempty,rarity"`
	Traits  []string        `json:"traits"`
	Owner   domain.Address  `json:"owner" validate:"required,wallet"`
	Creator string          `json:"creator"`
}

type ListParams struct {
	NftId int64           `json:"nftId" validate:"required"`
	Owner domain.Address  `json:"owner" validate:"required,wallet"`
	Price decimal.Decimal `json:"wldPrice"`
}

// Patch is a partial admin edit. Nil fields are left untouched.
type Patch struct {
	Name   *string          `json:"name"`
	Price  *decimal.Decimal `json:"wldPrice"`
	Rarity *Rarity          `json:"rarity"`
	Traits *[]string        `json:"traits"`
}

type FindAllOptions struct {
	Approved *bool
	Listed   *bool
	Owner    *domain.Address
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithApproved(approved bool) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.Approved = ptr.To(approved)
		return nil
	}
}

func WithListed(listed bool) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.Listed = ptr.To(listed)
		return nil
	}
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.Owner = ptr.To(owner)
		return nil
	}
}

// Match reports whether the record passes every set filter
func (o FindAllOptions) Match(n *NftRecord) bool {
	if o.Approved != nil && n.Approved != *o.Approved {
		return false
	}
	if o.Listed != nil && n.Listed != *o.Listed {
		return false
	}
	if o.Owner != nil && !n.IsOwnedBy(*o.Owner) {
		return false
	}
	return true
}

// Repo stores records and pending entries. Each mutating call is one atomic
// state transition; returned records are copies.
type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*NftRecord, error)
	FindOne(c ctx.Ctx, id int64) (*NftRecord, error)
	// Create allocates the next id, stores the record and appends entry for it
	Create(c ctx.Ctx, record *NftRecord, entry PendingEntry) (*NftRecord, error)
	// Relist hands the record to owner at price and sends it back to review.
	// Fails with domain.ErrNotOwner if someone else holds it.
	Relist(c ctx.Ctx, id int64, owner domain.Address, price decimal.Decimal, entry PendingEntry) (*NftRecord, error)
	Approve(c ctx.Ctx, id int64) (*NftRecord, error)
	Patch(c ctx.Ctx, id int64, patch Patch) (*NftRecord, error)
	Delete(c ctx.Ctx, id int64) (*NftRecord, error)
	PendingEntries(c ctx.Ctx) ([]*PendingEntry, error)
	// Revision changes whenever the stored data changes
	Revision(c ctx.Ctx) (int64, error)
	Ping(c ctx.Ctx) error
}

type Usecase interface {
	ListPublic(c ctx.Ctx) ([]*NftRecord, error)
	GetById(c ctx.Ctx, id int64) (*NftRecord, error)
	ListByOwner(c ctx.Ctx, address domain.Address) ([]*NftRecord, error)
	ListPending(c ctx.Ctx) ([]*NftRecord, error)
	Approvals(c ctx.Ctx) ([]*PendingEntry, error)
	Stats(c ctx.Ctx) (*Stats, error)
	Revision(c ctx.Ctx) (int64, error)

	Mint(c ctx.Ctx, params MintParams) (*NftRecord, error)
	List(c ctx.Ctx, params ListParams) (*NftRecord, error)
	Approve(c ctx.Ctx, id int64) (*NftRecord, error)
	Update(c ctx.Ctx, id int64, patch Patch) (*NftRecord, error)
	Delete(c ctx.Ctx, id int64) (*NftRecord, error)
}
