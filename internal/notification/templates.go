package notification

import (
	"fmt"
	"html"
)

const (
	SubjectWelcome             = "Welcome to EmeraldScentSational!"
	SubjectOrderConfirmation   = "Order Confirmation - EmeraldScentSational"
	SubjectOrderShipped        = "Your Order Has Shipped!"
	SubjectNewsletterWelcome   = "Welcome to EmeraldScentSational Newsletter!"
	SubjectContactConfirmation = "Thank you for contacting EmeraldScentSational"
)

const emailShell = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; background-color: #f9fafb; margin: 0; padding: 20px; }
    .container { max-width: 600px; margin: 0 auto; background-color: white; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
    .header { background: linear-gradient(135deg, #7e22ce, #a855f7); color: white; padding: 40px 20px; text-align: center; }
    .content { padding: 40px 20px; }
    .order-details { background-color: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0; }
    .footer { background-color: #f3f4f6; padding: 20px; text-align: center; color: #6b7280; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>%s</h1></div>
    <div class="content">%s</div>
    <div class="footer"><p>&copy; 2025 EmeraldScentSational. All rights reserved.</p></div>
  </div>
</body>
</html>`

func WelcomeEmail(name string) string {
	content := fmt.Sprintf(`<h2>Hello %s,</h2>
      <p>Welcome to the world of luxury fragrances! We're thrilled to have you join our exclusive community.</p>
      <p>Discover your signature scent from our curated collection of premium fragrances.</p>
      <p>Happy shopping!</p>`, name)
	return fmt.Sprintf(emailShell, "Welcome to EmeraldScentSational!", content)
}

func OrderConfirmationEmail(orderNumber string, total int64) string {
	content := fmt.Sprintf(`<h2>Thank you for your order!</h2>
      <div class="order-details">
        <p><strong>Order Number:</strong> %s</p>
        <p><strong>Total:</strong> &#8358;%d</p>
      </div>
      <p>We'll send you another email when your order ships.</p>`, orderNumber, total)
	return fmt.Sprintf(emailShell, "Order Confirmed!", content)
}

func NewsletterWelcomeEmail() string {
	content := `<h2>Thank you for subscribing!</h2>
      <p>You're now part of our exclusive fragrance community. Be the first to know about:</p>
      <ul>
        <li>New fragrance launches</li>
        <li>Exclusive offers and discounts</li>
        <li>Fragrance tips and guides</li>
        <li>Behind-the-scenes content</li>
      </ul>
      <p>Get ready to discover your signature scent!</p>`
	return fmt.Sprintf(emailShell, "Welcome to EmeraldScentSational!", content)
}

func ContactAdminEmail(name, email, subject, message string) string {
	content := fmt.Sprintf(`<h2>Contact Details:</h2>
      <p><strong>Name:</strong> %s</p>
      <p><strong>Email:</strong> %s</p>
      <p><strong>Subject:</strong> %s</p>
      <h2>Message:</h2>
      <p>%s</p>`,
		html.EscapeString(name), html.EscapeString(email),
		html.EscapeString(subject), html.EscapeString(message))
	return fmt.Sprintf(emailShell, "New Contact Form Submission", content)
}

func ContactConfirmationEmail(name, message string) string {
	content := fmt.Sprintf(`<h2>Hello %s,</h2>
      <p>We've received your message and will get back to you within 24 hours.</p>
      <p><strong>Your message:</strong></p>
      <div class="order-details"><p>%s</p></div>
      <p>Thank you for choosing EmeraldScentSational!</p>`,
		html.EscapeString(name), html.EscapeString(message))
	return fmt.Sprintf(emailShell, "Thank You for Contacting Us!", content)
}

func OrderShippedEmail(orderNumber, trackingNumber string) string {
	content := fmt.Sprintf(`<h2>Good news, your order is on its way!</h2>
      <div class="order-details">
        <p><strong>Order Number:</strong> %s</p>
        <p><strong>Tracking Number:</strong> %s</p>
      </div>
      <p>Use the tracking number above to follow your delivery.</p>`, orderNumber, trackingNumber)
	return fmt.Sprintf(emailShell, "Your Order Has Shipped!", content)
}
