package entity

// StoreMembership une un User con una Store bajo exactamente un Role.
// El par (UserID, StoreID) es único en store_users.
type StoreMembership struct {
	ID      int64
	UserID  int64
	StoreID int64
	RoleID  int64
	Role    *Role
	Store   *Store
}
