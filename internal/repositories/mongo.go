package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pdfdesk/internal/models"
)

const (
	usersCollection     = "users"
	documentsCollection = "documents"
)

// ConnectMongo dials the cluster, pings it and makes sure the unique e-mail
// index exists.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	_, err = db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("create email index: %w", err)
	}
	return client, db, nil
}

type userDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	FirstName    string        `bson:"firstName"`
	LastName     string        `bson:"lastName"`
	Email        string        `bson:"email"`
	Password     string        `bson:"password"`
	UserRole     string        `bson:"userRole"`
	IsVerify     bool          `bson:"isVerify"`
	OTP          *string       `bson:"otp,omitempty"`
	OTPExpiresAt *time.Time    `bson:"otpExpiresAt,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

func newUserDoc(u *models.User) userDoc {
	return userDoc{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Password:     u.PasswordHash,
		UserRole:     u.UserRole,
		IsVerify:     u.IsVerify,
		OTP:          u.OTP,
		OTPExpiresAt: u.OTPExpiresAt,
		CreatedAt:    u.CreatedAt,
	}
}

func (d userDoc) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.Password,
		UserRole:     d.UserRole,
		IsVerify:     d.IsVerify,
		OTP:          d.OTP,
		OTPExpiresAt: d.OTPExpiresAt,
		CreatedAt:    d.CreatedAt,
	}
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection(usersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	doc := newUserDoc(user)
	doc.ID = bson.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	u, err := r.findOne(ctx, bson.M{"_id": oid})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, err
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, err
}

// Update replaces the stored document; nil OTP fields are dropped with it.
func (r *mongoUserRepository) Update(ctx context.Context, user *models.User) error {
	oid, err := bson.ObjectIDFromHex(user.ID)
	if err != nil {
		return ErrInvalidID
	}
	doc := newUserDoc(user)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) ListExcept(ctx context.Context, id string) ([]*models.User, error) {
	cur, err := r.coll.Find(ctx, listExceptFilter(id), options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	res := make([]*models.User, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.model())
	}
	return res, nil
}

// listExceptFilter matches every user when id is not a valid ObjectID, since
// no stored user can carry it.
func listExceptFilter(id string) bson.M {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{}
	}
	return bson.M{"_id": bson.M{"$ne": oid}}
}

type documentDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	UserID        string        `bson:"userId"`
	PDFURL        string        `bson:"pdfUrl"`
	PDFContent    string        `bson:"pdfContent"`
	ExtractedURLs []string      `bson:"extractedUrls"`
	CreatedAt     time.Time     `bson:"createdAt"`
}

func newDocumentDoc(d *models.Document) documentDoc {
	return documentDoc{
		UserID:        d.UserID,
		PDFURL:        d.PDFURL,
		PDFContent:    d.PDFContent,
		ExtractedURLs: d.ExtractedURLs,
		CreatedAt:     d.CreatedAt,
	}
}

// model never returns nil ExtractedURLs, so lists encode as [].
func (d documentDoc) model() *models.Document {
	urls := d.ExtractedURLs
	if urls == nil {
		urls = []string{}
	}
	return &models.Document{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		PDFURL:        d.PDFURL,
		PDFContent:    d.PDFContent,
		ExtractedURLs: urls,
		CreatedAt:     d.CreatedAt,
	}
}

type mongoDocumentRepository struct {
	coll *mongo.Collection
}

func NewMongoDocumentRepository(db *mongo.Database) DocumentRepository {
	return &mongoDocumentRepository{coll: db.Collection(documentsCollection)}
}

func (r *mongoDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if doc.ExtractedURLs == nil {
		doc.ExtractedURLs = []string{}
	}
	d := newDocumentDoc(doc)
	d.ID = bson.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	doc.ID = d.ID.Hex()
	return nil
}

func (r *mongoDocumentRepository) List(ctx context.Context) ([]*models.Document, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var docs []documentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	res := make([]*models.Document, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.model())
	}
	return res, nil
}
