package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007

	// Market codes
	TokenInAuction      Code = 200001
	TokenNotForSale     Code = 200002
	TokenAlreadyForSale Code = 200003
	SelfPurchase        Code = 200004
	InsufficientFunds   Code = 200005

	// Auction codes
	BidTooLow        Code = 300001
	AuctionNotActive Code = 300002
	AuctionEnded     Code = 300003
	AuctionNotEnded  Code = 300004

	// Payment codes
	CreditFailed Code = 400001
	RefundFailed Code = 400002
)
