// Package services holds the business rules of the platform.
//
// Services defined in this package:
//   - AuthService: registration, login and password reset
//   - ClubService: club listing, applications, approval and membership
//   - EventService: events, attendance and calendar export
//   - CommentService: event comment threads
//   - NotificationService: stored notifications and live push
//   - UserService: profiles, history and search
//   - AdminService: dashboard, bans, roles and announcements
//   - WeatherService: cached weather lookups
package services
