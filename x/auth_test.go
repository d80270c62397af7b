package x

import (
	"context"
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/ledgertest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAuth(t *testing.T) {
	employer := ledgertest.NewIdentity()
	worker := ledgertest.NewIdentity()
	stranger := ledgertest.NewIdentity()
	bg := context.Background()

	Convey("Given a single signer", t, func() {
		auth := &ledgertest.Auth{Signer: employer}

		Convey("it is the main signer and verifies", func() {
			So(MainSigner(bg, auth), ShouldEqual, employer)
			So(auth.Verify(bg, employer), ShouldBeTrue)
			So(auth.Verify(bg, worker), ShouldBeFalse)
		})
	})

	Convey("Given no signers", t, func() {
		auth := &ledgertest.Auth{}

		Convey("nobody verifies and the main signer is empty", func() {
			So(MainSigner(bg, auth).IsSet(), ShouldBeFalse)
			So(auth.Verify(bg, employer), ShouldBeFalse)
			So(auth.Signers(bg), ShouldBeEmpty)
		})
	})

	Convey("Given chained authorizers", t, func() {
		auth := ChainAuth(
			&ledgertest.Auth{Signer: worker},
			&ledgertest.Auth{Others: []ledger.Identity{employer, worker}},
		)

		Convey("signers keep member order without duplicates", func() {
			So(auth.Signers(bg), ShouldResemble, []ledger.Identity{worker, employer})
			So(MainSigner(bg, auth), ShouldEqual, worker)
		})

		Convey("any member can verify", func() {
			So(auth.Verify(bg, employer), ShouldBeTrue)
			So(auth.Verify(bg, stranger), ShouldBeFalse)
		})
	})

	Convey("Given signers stored in the context", t, func() {
		mine := &ledgertest.CtxAuth{Key: "escrow-test"}
		other := &ledgertest.CtxAuth{Key: "other"}
		ctx := mine.SetSigners(bg, employer, worker)

		Convey("the matching key sees them", func() {
			So(mine.Signers(ctx), ShouldResemble, []ledger.Identity{employer, worker})
			So(mine.Verify(ctx, worker), ShouldBeTrue)
			So(mine.Verify(ctx, stranger), ShouldBeFalse)
		})

		Convey("another key sees nothing", func() {
			So(other.Verify(ctx, employer), ShouldBeFalse)
			So(MainSigner(ctx, other).IsSet(), ShouldBeFalse)
		})
	})
}
