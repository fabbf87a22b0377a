package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/cache"
	"github.com/buttcoder420/FinalYear-backend/mailer"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/store"
	"github.com/buttcoder420/FinalYear-backend/utils"
)

type UserService struct {
	store     *store.Store
	pending   *cache.RegistrationCache
	mail      mailer.Sender
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(st *store.Store, pending *cache.RegistrationCache, mail mailer.Sender, jwtSecret []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		store:     st,
		pending:   pending,
		mail:      mail,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type RegisterRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	UserName       string `json:"userName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	WhatsappNumber string `json:"whatsappNumber"`
	Address        string `json:"address"`
	City           string `json:"city"`
	UserField      string `json:"userField"`
	Password       string `json:"password"`
}

// Register hashes the password, stashes the pending user in the expiring
// cache and emails the verification code. Nothing is persisted until the
// code comes back.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) error {
	if req.FirstName == "" || req.LastName == "" || req.UserName == "" || req.Email == "" ||
		req.PhoneNumber == "" || req.Address == "" || req.City == "" || req.UserField == "" ||
		req.Password == "" {
		return apperr.Invalid("All fields are required")
	}
	if req.UserField != models.FieldBuyer && req.UserField != models.FieldSeller {
		return apperr.Invalid("User field must be 'buyer' or 'seller'")
	}
	if !models.ValidCity(req.City) {
		return apperr.Invalid("Invalid city")
	}

	taken, err := s.store.Users.IdentifierTaken(ctx, req.Email, req.UserName, req.PhoneNumber)
	if err != nil {
		return fmt.Errorf("check identifiers: %w", err)
	}
	if taken {
		return apperr.Conflict("Email, Username, or phone number already exist.")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	code := utils.GenerateVerificationCode()
	s.pending.Set(req.Email, cache.PendingRegistration{
		User: models.User{
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			UserName:          req.UserName,
			Email:             req.Email,
			PhoneNumber:       req.PhoneNumber,
			WhatsappNumber:    req.WhatsappNumber,
			Address:           req.Address,
			City:              req.City,
			UserField:         req.UserField,
			Role:              models.RoleUser,
			Password:          hashed,
			VerificationToken: uuid.NewString(),
		},
		VerificationCode: code,
	})

	body := fmt.Sprintf(`<p>Your verification code is: <strong>%s</strong></p>
	<p>Enter this code in the app to verify your email.</p>`, code)
	if err := s.mail.Send(req.Email, "Your Verification Code", body); err != nil {
		return apperr.Unexpected("Failed to send verification email.")
	}
	return nil
}

// VerifyEmail promotes a pending registration to a persisted verified user
// and logs them in.
func (s *UserService) VerifyEmail(ctx context.Context, email, code string) (*models.User, string, error) {
	pending, ok := s.pending.Get(email)
	if !ok || pending.VerificationCode != code {
		return nil, "", apperr.Invalid("Invalid verification code or email.")
	}

	user := pending.User
	user.IsVerified = true
	if err := s.store.Users.Insert(ctx, &user); err != nil {
		return nil, "", fmt.Errorf("insert user: %w", err)
	}
	s.pending.Delete(email)

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return &user, token, nil
}

// Login authenticates by email, username or phone number. Unverified
// identities never get a token.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	if identifier == "" || password == "" {
		return nil, "", apperr.Invalid("All fields are required")
	}

	user, err := s.store.Users.FindByIdentifier(ctx, identifier)
	if err == store.ErrNotFound {
		return nil, "", apperr.NotFound("Invalid credentials")
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !user.IsVerified {
		return nil, "", apperr.Unauthenticated("Please verify your email before logging in.")
	}
	if !utils.ComparePassword(password, user.Password) {
		return nil, "", apperr.Unauthenticated("Invalid password")
	}

	if user.LastLoginAt != nil {
		days := int(timeNow().Sub(*user.LastLoginAt).Hours() / 24)
		if days > 5 {
			log.Printf("User %s last logged in %d days ago.", user.UserName, days)
		}
	}
	now := timeNow()
	user.LastLoginAt = &now
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("update user: %w", err)
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// UserInfo is the admin listing projection.
type UserInfo struct {
	models.User
	DaysSinceLastLogin string `json:"daysSinceLastLogin"`
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]UserInfo, error) {
	users, err := s.store.Users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	infos := make([]UserInfo, 0, len(users))
	for _, user := range users {
		info := UserInfo{User: user, DaysSinceLastLogin: "Never logged in"}
		if user.LastLoginAt != nil {
			days := int(timeNow().Sub(*user.LastLoginAt).Hours() / 24)
			info.DaysSinceLastLogin = fmt.Sprintf("%d", days)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperr.Invalid("Invalid user ID")
	}
	err = s.store.Users.DeleteByID(ctx, id)
	if err == store.ErrNotFound {
		return apperr.NotFound("User not found")
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// UserUpdate lists the profile fields an admin or the user may change.
type UserUpdate struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	PhoneNumber    *string `json:"phoneNumber"`
	WhatsappNumber *string `json:"whatsappNumber"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, update UserUpdate) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Invalid("Invalid user ID")
	}
	user, err := s.store.Users.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := s.applyUpdate(user, update); err != nil {
		return nil, err
	}
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetLoggedInUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

type ProfileUpdateRequest struct {
	UserUpdate
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfile changes the caller's own profile and, when both passwords are
// sent, rotates the password after checking the old one.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req ProfileUpdateRequest) (*models.User, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if req.OldPassword != "" && req.NewPassword != "" {
		if !utils.ComparePassword(req.OldPassword, user.Password) {
			return nil, apperr.Invalid("Old password is incorrect")
		}
		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.applyUpdate(user, req.UserUpdate); err != nil {
		return nil, err
	}
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) applyUpdate(user *models.User, update UserUpdate) error {
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = *update.PhoneNumber
	}
	if update.WhatsappNumber != nil {
		user.WhatsappNumber = *update.WhatsappNumber
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.City != nil {
		if !models.ValidCity(*update.City) {
			return apperr.Invalid("Invalid city")
		}
		user.City = *update.City
	}
	return nil
}
