package router

import (
	"html/template"
	"net/http"
)

// page is the static content for one marketing route. The real storefront
// renders client-side against the /api endpoints; these pages carry just
// enough markup for crawlers and direct visits.
type page struct {
	Title   string
	Heading string
	Intro   string
}

var (
	homePage = page{
		Title:   "Choppers Salon",
		Heading: "Look sharp. Feel sharper.",
		Intro:   "Cuts, color and styling from a team that cares. Book online or browse our shop.",
	}
	aboutPage = page{
		Title:   "About | Choppers Salon",
		Heading: "About Choppers",
		Intro:   "A neighborhood salon with a decade of happy heads behind us.",
	}
	servicesPage = page{
		Title:   "Services | Choppers Salon",
		Heading: "Our Services",
		Intro:   "Haircuts, coloring, highlights, treatments and styling for every occasion.",
	}
	contactPage = page{
		Title:   "Contact | Choppers Salon",
		Heading: "Get in Touch",
		Intro:   "Questions about an appointment or an order? We answer fast.",
	}
	shopPage = page{
		Title:   "Shop | Choppers Salon",
		Heading: "Salon-Grade Products",
		Intro:   "The same products our stylists use, delivered to your door.",
	}
	loginPage = page{
		Title:   "Log In | Choppers Salon",
		Heading: "Welcome Back",
		Intro:   "Log in to book appointments and track your orders.",
	}
	registerPage = page{
		Title:   "Register | Choppers Salon",
		Heading: "Create an Account",
		Intro:   "Join us to book your first appointment.",
	}
	bookingPage = page{
		Title:   "Book | Choppers Salon",
		Heading: "Book an Appointment",
		Intro:   "Pick a service, a stylist, a date and a time. Four quick steps.",
	}
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<nav>
<a href="/">Home</a>
<a href="/about">About</a>
<a href="/services">Services</a>
<a href="/shop">Shop</a>
<a href="/booking">Book Now</a>
<a href="/contact">Contact</a>
</nav>
<main>
<h1>{{.Heading}}</h1>
<p>{{.Intro}}</p>
</main>
</body>
</html>
`))

func pageHandler(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		pageTemplate.Execute(w, p)
	}
}
