package notification

// HTML bodies for the outgoing mail.  Self-contained: inline styles only,
// no external assets, so they render the same in every client.

import (
	"fmt"
	"strings"
	"time"
)

// newInspectionHTML is the admin alert for a freshly filed inspection.  It
// carries the inspection details, the driver's observations when present
// and a deep link straight to the review screen.
func newInspectionHTML(baseURL, empresa, placa, conductor, tipo string, fecha time.Time, kilometraje int, observaciones string, inspectionID uint64) string {
	obsBlock := ""
	if observaciones != "" {
		obsBlock = fmt.Sprintf(`
			<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0;">
				<h3>💬 Observaciones del Conductor:</h3>
				<p>%s</p>
			</div>`, observaciones)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="background-color: #e3f2fd; padding: 20px; border-radius: 5px; border-left: 4px solid #2196f3;">
			<h2>📋 Nueva Inspección Preoperacional Registrada</h2>
			<span style="display: inline-block; padding: 5px 12px; background-color: #ffc107; color: #000; border-radius: 20px; font-size: 12px; font-weight: bold; text-transform: uppercase;">Pendiente de Revisión</span>
		</div>
		<div style="padding: 20px;">
			<p>Se ha registrado una nueva inspección preoperacional en <strong>%s</strong>.</p>
			<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0;">
				<h3>📊 Detalles de la Inspección:</h3>
				<ul>
					<li><strong>Vehículo:</strong> %s</li>
					<li><strong>Conductor:</strong> %s</li>
					<li><strong>Tipo de vehículo:</strong> %s</li>
					<li><strong>Fecha de inspección:</strong> %s</li>
					<li><strong>Kilometraje:</strong> %d km</li>
					<li><strong>ID de Inspección:</strong> #%d</li>
				</ul>
			</div>
			%s
			<div style="background-color: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 5px; margin: 15px 0;">
				<h3>⚠️ Acción Requerida</h3>
				<p>Esta inspección requiere su revisión y aprobación. El PDF completo está disponible en el sistema.</p>
			</div>
			<div style="text-align: center; margin: 30px 0;">
				<a href="%s/admin/inspections/%d" style="display: inline-block; padding: 12px 24px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; font-weight: bold;">
					🔍 Revisar Inspección #%d
				</a>
			</div>
		</div>
		<div style="text-align: center; padding: 20px; font-size: 12px; color: #666;">
			<p>Este es un correo automático del sistema PESV. Por favor no responda a este mensaje.</p>
		</div>
	</div>
</body>
</html>`, empresa, placa, conductor, tipo, fecha.Format("02/01/2006"), kilometraje,
		inspectionID, obsBlock, baseURL, inspectionID, inspectionID)
}

// statusUpdateHTML tells the driver the review outcome.  Header and status
// line are green for aprobada and red for anything else.
func statusUpdateHTML(estado, placa, conductor, comentario string) string {
	headerColor, statusColor := "#f8d7da", "#721c24"
	if estado == "aprobada" {
		headerColor, statusColor = "#d4edda", "#155724"
	}
	comentarioBlock := ""
	if comentario != "" {
		comentarioBlock = fmt.Sprintf(`
			<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin-top: 20px;">
				<p><strong>Comentario del administrador:</strong></p>
				<p>%s</p>
			</div>`, comentario)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="background-color: %s; padding: 20px; border-radius: 5px;">
			<h2>Actualización de Inspección Preoperacional</h2>
		</div>
		<div style="padding: 20px;">
			<p style="font-size: 24px; font-weight: bold; color: %s;">Estado: %s</p>
			<p><strong>Detalles de la inspección:</strong></p>
			<ul>
				<li>Vehículo: %s</li>
				<li>Conductor: %s</li>
				<li>Fecha de actualización: %s</li>
			</ul>
			%s
		</div>
		<div style="text-align: center; padding: 20px; font-size: 12px; color: #666;">
			<p>Este es un correo automático, por favor no responda a este mensaje.</p>
		</div>
	</div>
</body>
</html>`, headerColor, statusColor, strings.ToUpper(estado), placa, conductor,
		time.Now().Format("02/01/2006"), comentarioBlock)
}

// pdfNoticeHTML accompanies the attachment variant.
func pdfNoticeHTML(baseURL, empresa, placa, conductor, tipo string, fecha time.Time, kilometraje int, observaciones, filename string) string {
	obsBlock := ""
	if observaciones != "" {
		obsBlock = fmt.Sprintf(`
			<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0;">
				<h3>💬 Observaciones del Conductor:</h3>
				<p>%s</p>
			</div>`, observaciones)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="background-color: #e3f2fd; padding: 20px; border-radius: 5px; border-left: 4px solid #2196f3;">
			<h2>📋 Inspección Preoperacional Completada</h2>
		</div>
		<div style="padding: 20px;">
			<p>Se ha completado una nueva inspección preoperacional en <strong>%s</strong>.</p>
			<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0;">
				<h3>📊 Detalles de la Inspección:</h3>
				<ul>
					<li><strong>Vehículo:</strong> %s</li>
					<li><strong>Conductor:</strong> %s</li>
					<li><strong>Tipo de vehículo:</strong> %s</li>
					<li><strong>Fecha de inspección:</strong> %s</li>
					<li><strong>Kilometraje:</strong> %d km</li>
				</ul>
			</div>
			<div style="background-color: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 5px; margin: 15px 0;">
				<h3>📎 Documento Adjunto</h3>
				<p>El PDF completo de la inspección se encuentra adjunto a este correo.</p>
				<p><strong>Nombre del archivo:</strong> %s</p>
			</div>
			%s
			<a href="%s/admin/inspections.html" style="display: inline-block; padding: 10px 20px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; margin-top: 20px;">Ver en el Sistema</a>
		</div>
		<div style="text-align: center; padding: 20px; font-size: 12px; color: #666;">
			<p>Este es un correo automático del sistema PESV. Por favor no responda a este mensaje.</p>
		</div>
	</div>
</body>
</html>`, empresa, placa, conductor, tipo, fecha.Format("02/01/2006"),
		kilometraje, filename, obsBlock, baseURL)
}

// verificationCodeHTML delivers a password-reset code.
func verificationCodeHTML(code string) string {
	return fmt.Sprintf(`
	<h1>Recuperación de Contraseña</h1>
	<p>Tu código de verificación es: <strong>%s</strong></p>
	<p>Este código expirará en 10 minutos.</p>
	<p>Si no solicitaste este código, por favor ignora este correo.</p>`, code)
}
