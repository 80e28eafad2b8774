package model

import "time"

type PlayerID int64

// Player is an account that joins leagues and submits predictions.
// FriendCode is an 8 digit code other players use to send friend requests.
type Player struct {
	ID         PlayerID
	Username   string
	FriendCode string
	Created    time.Time
}

// FriendRequest is a pending request from one player to another. Accepting
// it removes the request and makes the two players mutual friends.
type FriendRequest struct {
	FromID PlayerID
	ToID   PlayerID
	Sent   time.Time
}
